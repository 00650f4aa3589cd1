package export_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/export"
	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func summary() *ledger.Summary {
	due := now.AddDate(0, 0, 5)

	return ledger.Build(100000,
		[]*expense.Expense{
			{ID: "e1", Title: "Venue", Category: "venue", TotalAmount: 50000, DueDate: &due},
			{ID: "e2", Title: "Cake", Category: "food", TotalAmount: 2000, PaymentAllocations: []expense.PaymentAllocation{{ID: "p", Amount: 2000}}},
		},
		[]*contributor.Contributor{{ID: "c1", Name: "Aunt May"}},
		[]*gift.Gift{{ID: "g1", ContributorID: "c1", Amount: 30000, Date: now, Notes: "cheque"}},
		[]*gift.Allocation{{ID: "a1", GiftID: "g1", ExpenseID: "e1", Amount: 10000}},
	)
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}

func TestWorkbook(t *testing.T) {
	wb, err := export.Workbook(summary(), now, 30)
	require.NoError(t, err)

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	f := open(t, buf.Bytes())
	assert.Equal(t, []string{export.SheetExpenses, export.SheetGifts, export.SheetUpcoming}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetExpenses, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Title", rows[0][0])
	assert.Equal(t, []string{"Venue", "venue", "", "2026-06-06", "500", "100", "400", "Partially paid"}, rows[1])
	assert.Equal(t, "Paid", rows[2][7])
	assert.Equal(t, "Total", rows[3][0])

	rows, err = f.GetRows(export.SheetGifts, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-06-01", "Aunt May", "300", "100", "200", "cheque"}, rows[1])

	rows, err = f.GetRows(export.SheetUpcoming, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-06-06", "Venue", "venue", "400", "5"}, rows[1])
}

func TestService_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := export.NewMockSummarySource(ctrl)
	archiver := export.NewMockArchiver(ctrl)

	source.EXPECT().Summary(gomock.Any(), "ws1").Return(summary(), settings.Defaults("ws1"), nil)
	archiver.EXPECT().Upload(gomock.Any(), gomock.Any(), export.ContentType, gomock.Any()).
		DoAndReturn(func(_ context.Context, object, _ string, data []byte) (string, error) {
			assert.Contains(t, object, "exports/ws1/wedding-budget-")
			assert.NotEmpty(t, open(t, data).GetSheetList())
			return "gs://bucket/" + object, nil
		})

	url, err := export.NewService(source, archiver).Archive(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Contains(t, url, "gs://bucket/exports/ws1/")
}

func TestService_Archive_Disabled(t *testing.T) {
	_, err := export.NewService(nil, nil).Archive(context.Background(), "ws1")
	assert.ErrorIs(t, err, export.ErrArchiveDisabled)
}

func TestService_Workbook_LedgerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := export.NewMockSummarySource(ctrl)
	source.EXPECT().Summary(gomock.Any(), "ws1").Return(nil, nil, errors.New("boom"))

	_, err := export.NewService(source, nil).Workbook(context.Background(), "ws1")
	assert.ErrorContains(t, err, "building ledger")
}
