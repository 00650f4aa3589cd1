package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/weddingledger/planner/internal/ledger"
)

const (
	SheetExpenses = "All Expenses"
	SheetGifts    = "Gifts"
	SheetUpcoming = "Upcoming Payments"

	dateLayout = "2006-01-02"
	// moneyFormat is excelize's built-in "#,##0.00".
	moneyFormat = 4
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	money   []int
	rows    [][]any
}

// Workbook renders sum as an xlsx file. The caller closes the result.
func Workbook(sum *ledger.Summary, now time.Time, windowDays int) (*excelize.File, error) {
	sheets := []sheet{
		expensesSheet(sum),
		giftsSheet(sum),
		upcomingSheet(sum, now, windowDays),
	}

	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2E6D9"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating money style: %w", err)
	}

	for i, s := range sheets {
		if err := writeSheet(f, i, s, header, money); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing sheet %q: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)

	return f, nil
}

func writeSheet(f *excelize.File, index int, s sheet, headerStyle, moneyStyle int) error {
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(s.name); err != nil {
		return err
	}

	for _, col := range s.money {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}

		if err := f.SetColStyle(s.name, name, moneyStyle); err != nil {
			return err
		}
	}

	for i, w := range s.widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(s.name, name, name, w); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(s.name, "A1", &s.headers); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func expensesSheet(sum *ledger.Summary) sheet {
	s := sheet{
		name:    SheetExpenses,
		headers: []string{"Title", "Category", "Provider", "Due Date", "Total", "Paid", "Remaining", "Status"},
		widths:  []float64{32, 18, 22, 12, 14, 14, 14, 14},
		money:   []int{5, 6, 7},
	}

	for _, v := range sum.Expenses {
		e := v.Expense
		s.rows = append(s.rows, []any{
			e.Title, e.Category, e.Provider, formatDate(e.DueDate),
			units(e.TotalAmount), units(v.Paid), units(v.Remaining), status(v),
		})
	}

	s.rows = append(s.rows, []any{
		"Total", "", "", "",
		units(sum.Totals.Planned), units(sum.Totals.Paid), units(sum.Totals.Remaining), "",
	})

	return s
}

func giftsSheet(sum *ledger.Summary) sheet {
	s := sheet{
		name:    SheetGifts,
		headers: []string{"Date", "From", "Amount", "Allocated", "Unallocated", "Notes"},
		widths:  []float64{12, 28, 14, 14, 14, 40},
		money:   []int{3, 4, 5},
	}

	for _, v := range sum.Gifts {
		s.rows = append(s.rows, []any{
			v.Gift.Date.Format(dateLayout), v.Giver,
			units(v.Gift.Amount), units(v.Allocated), units(v.Unallocated), v.Gift.Notes,
		})
	}

	return s
}

func upcomingSheet(sum *ledger.Summary, now time.Time, windowDays int) sheet {
	s := sheet{
		name:    SheetUpcoming,
		headers: []string{"Due Date", "Title", "Category", "Remaining", "Days Left"},
		widths:  []float64{12, 32, 18, 14, 10},
		money:   []int{4},
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	for _, v := range sum.Upcoming(now, windowDays) {
		dy, dm, dd := v.Expense.DueDate.Date()
		due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)

		s.rows = append(s.rows, []any{
			formatDate(v.Expense.DueDate), v.Expense.Title, v.Expense.Category,
			units(v.Remaining), int(due.Sub(today).Hours() / 24),
		})
	}

	return s
}

func units(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(dateLayout)
}

func status(v *ledger.ExpenseView) string {
	switch {
	case v.Overpaid:
		return "Overpaid"
	case v.Remaining == 0:
		return "Paid"
	case v.Paid > 0:
		return "Partially paid"
	default:
		return "Unpaid"
	}
}
