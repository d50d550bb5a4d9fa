package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/summary"
)

func newSummaryCommand(o *options) *cobra.Command {
	var itinerary, format, output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the budget summary of an itinerary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := parseItinerary(itinerary)
			if err != nil {
				return err
			}

			render := map[string]func(summary.Summary) ([]byte, error){
				"xlsx": summary.XLSX,
				"pdf":  summary.PDF,
			}

			format = strings.ToLower(format)
			if _, ok := render[format]; !ok && format != "json" {
				return fmt.Errorf("invalid format '%s': must be one of json, xlsx, pdf", format)
			}

			if format != "json" && output == "" {
				return fmt.Errorf("--output is required for the %s format", format)
			}

			return o.run(func(s *budget.Service) error {
				sum, err := s.Summary(cmd.Context(), id)
				if err != nil {
					return err
				}

				if format == "json" {
					return printJSON(cmd, sum)
				}

				data, err := render[format](sum)
				if err != nil {
					return err
				}

				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}

				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&itinerary, "itinerary", "i", "", "ID of the itinerary")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, xlsx or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write xlsx and pdf exports to")

	return cmd
}

func newReallocateCommand(o *options) *cobra.Command {
	var itinerary, mode, total string

	cmd := &cobra.Command{
		Use:   "reallocate",
		Short: "Split the total budget of an itinerary over its days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := parseItinerary(itinerary)
			if err != nil {
				return err
			}

			m, err := allocation.ParseMode(mode)
			if err != nil {
				return err
			}

			var newTotal *decimal.Decimal
			if total != "" {
				t, err := decimal.NewFromString(total)
				if err != nil {
					return fmt.Errorf("invalid total '%s': %w", total, err)
				}
				newTotal = &t
			}

			return o.run(func(s *budget.Service) error {
				var sum summary.Summary
				if m == allocation.ModeExternal {
					sum, err = s.AIReallocate(cmd.Context(), id, budget.AIOptions{Total: newTotal})
				} else {
					sum, err = s.Reallocate(cmd.Context(), id, newTotal, m)
				}

				if err != nil {
					return err
				}

				return printJSON(cmd, sum)
			})
		},
	}

	cmd.Flags().StringVarP(&itinerary, "itinerary", "i", "", "ID of the itinerary")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(allocation.ModeEqual), "Allocation mode: equal, proportional or external")
	cmd.Flags().StringVarP(&total, "total", "t", "", "New total budget")

	return cmd
}

func newAnalyzeCommand(o *options) *cobra.Command {
	var itinerary string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the spend of an itinerary or of the whole ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(s *budget.Service) error {
				var id *uuid.UUID
				if itinerary != "" {
					parsed, err := parseItinerary(itinerary)
					if err != nil {
						return err
					}
					id = &parsed
				}

				analysis, err := s.Analyze(cmd.Context(), id)
				if err != nil {
					return err
				}

				return printJSON(cmd, analysis)
			})
		},
	}

	cmd.Flags().StringVarP(&itinerary, "itinerary", "i", "", "ID of the itinerary, the whole ledger when empty")

	return cmd
}
