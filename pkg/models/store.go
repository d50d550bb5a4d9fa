package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store persists itineraries, their days and budget records with gorm.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func orderedDays(db *gorm.DB) *gorm.DB {
	return db.Order("day_index ASC")
}

// CreateItinerary creates the itinerary together with its days.
func (s *Store) CreateItinerary(ctx context.Context, itinerary *Itinerary) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Days are created explicitly so that unique constraint
		// violations are not swallowed by the association upsert
		if err := tx.Omit("Days").Create(itinerary).Error; err != nil {
			return err
		}

		for i := range itinerary.Days {
			itinerary.Days[i].ItineraryID = itinerary.ID
			if err := tx.Create(&itinerary.Days[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) GetItinerary(ctx context.Context, id uuid.UUID) (Itinerary, error) {
	var itinerary Itinerary
	err := s.DB.WithContext(ctx).Preload("Days", orderedDays).First(&itinerary, "id = ?", id).Error
	if err != nil {
		return Itinerary{}, err
	}

	return itinerary, nil
}

func (s *Store) ListItineraries(ctx context.Context) ([]Itinerary, error) {
	itineraries := []Itinerary{}
	err := s.DB.WithContext(ctx).Preload("Days", orderedDays).Order("created_at ASC").Find(&itineraries).Error
	if err != nil {
		return nil, err
	}

	return itineraries, nil
}

// DeleteItinerary deletes the itinerary and its days. Budget records
// referencing the itinerary are kept.
func (s *Store) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itinerary Itinerary
		if err := tx.First(&itinerary, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("itinerary_id = ?", id).Delete(&ItineraryDay{}).Error; err != nil {
			return err
		}

		return tx.Delete(&itinerary).Error
	})
}

// SetDayBudgets writes the daily budget of every given day in one transaction.
func (s *Store) SetDayBudgets(ctx context.Context, days []ItineraryDay) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setDayBudgets(tx, days)
	})
}

// SetAllocation writes the daily budgets and, when total is not nil, the
// total budget of the itinerary in one transaction.
func (s *Store) SetAllocation(ctx context.Context, id uuid.UUID, days []ItineraryDay, total *decimal.Decimal) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setDayBudgets(tx, days); err != nil {
			return err
		}

		if total == nil {
			return nil
		}

		result := tx.Model(&Itinerary{}).Where("id = ?", id).Update("budget", *total)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w itinerary matching your query", ErrResourceNotFound)
		}

		return nil
	})
}

func setDayBudgets(tx *gorm.DB, days []ItineraryDay) error {
	for _, day := range days {
		result := tx.Model(&ItineraryDay{}).Where("id = ?", day.ID).Update("daily_budget", day.DailyBudget)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w itinerary day matching your query", ErrResourceNotFound)
		}
	}

	return nil
}

func (s *Store) CreateRecord(ctx context.Context, record *BudgetRecord) error {
	return s.DB.WithContext(ctx).Create(record).Error
}

func (s *Store) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Delete(&BudgetRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w budget record matching your query", ErrResourceNotFound)
	}

	return nil
}

// ListRecords returns the records of an itinerary ordered by date, or all
// records when itineraryID is nil.
func (s *Store) ListRecords(ctx context.Context, itineraryID *uuid.UUID) ([]BudgetRecord, error) {
	records := []BudgetRecord{}

	query := s.DB.WithContext(ctx).Order("date ASC, created_at ASC")
	if itineraryID != nil {
		query = query.Where("itinerary_id = ?", *itineraryID)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneral, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrGeneral, err)
	}

	return nil
}
