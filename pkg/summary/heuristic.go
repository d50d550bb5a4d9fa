package summary

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// HeuristicInput is the data the rule based suggestions are derived from.
//
// TotalBudget is nil for the ledger wide analysis, which has no itinerary.
type HeuristicInput struct {
	TotalBudget  *decimal.Decimal
	DailyBudgets []decimal.Decimal
	SpentPerDay  []decimal.Decimal
	ByCategory   map[string]decimal.Decimal
}

// Suggester produces rule based budget suggestions in a fixed locale.
type Suggester struct {
	printer *message.Printer

	// separator is the decimal separator of the locale
	separator string
}

func NewSuggester(tag language.Tag) Suggester {
	p := message.NewPrinter(tag)

	return Suggester{
		printer:   p,
		separator: strings.Trim(p.Sprint(number.Decimal(1.5, number.Scale(1))), "15"),
	}
}

// money formats d with two decimals and the grouping of the locale. The
// digits come from the decimal itself, floats would lose cents on large
// amounts.
func (s Suggester) money(d decimal.Decimal) string {
	rounded := d.Round(2)
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return rounded.StringFixed(2)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	return sign + s.printer.Sprint(number.Decimal(w)) + s.separator + cents
}

// Heuristic returns suggestions derived from the input. It never returns an
// empty list.
func (s Suggester) Heuristic(in HeuristicInput) []string {
	tips := []string{}

	days := len(in.SpentPerDay)
	if len(in.DailyBudgets) < days {
		days = len(in.DailyBudgets)
	}

	for i := 0; i < days; i++ {
		spent, budget := in.SpentPerDay[i], in.DailyBudgets[i]
		if spent.GreaterThan(budget) {
			tips = append(tips, s.printer.Sprintf("Day %d: spent %v, which is over the budget of %v. Consider cutting back on shopping or dining and using public transport.", i+1, s.money(spent), s.money(budget)))
		}
	}

	if category, ok := topCategory(in.ByCategory); ok {
		tips = append(tips, s.printer.Sprintf("Most of the spending goes to %s. Look for discounts, alternatives or book in advance to lower these costs.", category))
	}

	if in.TotalBudget != nil && len(in.SpentPerDay) > 0 {
		diff := in.TotalBudget.Sub(decimal.Sum(decimal.Zero, in.SpentPerDay...))
		if diff.IsNegative() {
			tips = append(tips, s.printer.Sprintf("The total budget is exceeded by %v. Tighten the remaining daily budgets and prioritize the essentials.", s.money(diff.Abs())))
		} else {
			tips = append(tips, s.printer.Sprintf("There are %v left of the total budget. You can afford a few extras, but keep an eye on it.", s.money(diff)))
		}
	}

	if len(tips) == 0 {
		tips = append(tips, s.printer.Sprintf("The budget is on track. Keep going at this pace and keep recording your expenses."))
	}

	return tips
}

// topCategory returns the category with the highest spend. Ties are
// broken by the alphabetically first category name.
func topCategory(byCategory map[string]decimal.Decimal) (string, bool) {
	if len(byCategory) == 0 {
		return "", false
	}

	categories := maps.Keys(byCategory)
	sort.Strings(categories)

	top := categories[0]
	for _, c := range categories[1:] {
		if byCategory[c].GreaterThan(byCategory[top]) {
			top = c
		}
	}

	return top, true
}
