package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

const (
	paymentsSheet = "Payments"
	summarySheet  = "Summary"
)

// ExcelService handles Excel export of payment records
type ExcelService struct {
	paymentService *PaymentService
}

// NewExcelService creates a new Excel service
func NewExcelService(paymentService *PaymentService) *ExcelService {
	return &ExcelService{paymentService: paymentService}
}

// StatusSummary aggregates the payments of one status
type StatusSummary struct {
	Status models.PaymentStatus
	Count  int
	Total  decimal.Decimal
}

// ExportPaymentsToExcel generates a workbook with every payment of a period
// and a per-status summary
func (s *ExcelService) ExportPaymentsToExcel(ctx context.Context, period models.Period) (*excelize.File, string, error) {
	payments, err := s.paymentService.ListByPeriod(ctx, period)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createPaymentSheet(f, payments); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create payment sheet: %w", err)
	}
	if err := s.createSummarySheet(f, summarizeByStatus(payments)); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to create summary sheet: %w", err)
	}

	// Delete the default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	filename := utils.CleanFileName(fmt.Sprintf("Payments_%04d-%02d.xlsx", period.Year, period.Month))
	return f, filename, nil
}

// createPaymentSheet creates one row per payment
func (s *ExcelService) createPaymentSheet(f *excelize.File, payments []models.Payment) error {
	index, err := f.NewSheet(paymentsSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headers := []any{"Payment ID", "Member", "Period", "Amount", "Due Date", "Registered", "Status", "Method", "Receipt", "Notes"}
	if err := f.SetSheetRow(paymentsSheet, "A1", &headers); err != nil {
		return err
	}
	if err := styleHeader(f, paymentsSheet, len(headers)); err != nil {
		return err
	}

	for i, payment := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			payment.ID,
			payment.OwnerID,
			payment.Period.String(),
			payment.Amount.InexactFloat64(),
			payment.DueDate.Format(utils.DateLayout),
			payment.RegistrationDate.Format(utils.DateLayout),
			string(payment.Status),
			payment.PaymentMethod,
			payment.ReceiptPath,
			payment.Notes,
		}
		if err := f.SetSheetRow(paymentsSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(paymentsSheet, "A", "J", 18)
}

// createSummarySheet creates count and total per status
func (s *ExcelService) createSummarySheet(f *excelize.File, summaries []StatusSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	headers := []any{"Status", "Count", "Total Amount"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return err
	}
	if err := styleHeader(f, summarySheet, len(headers)); err != nil {
		return err
	}

	for i, summary := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{string(summary.Status), summary.Count, summary.Total.InexactFloat64()}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(summarySheet, "A", "C", 15)
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

// summarizeByStatus totals payments per status in a fixed status order
func summarizeByStatus(payments []models.Payment) []StatusSummary {
	summaries := []StatusSummary{
		{Status: models.StatusPending, Total: decimal.Zero},
		{Status: models.StatusPaid, Total: decimal.Zero},
		{Status: models.StatusOverdue, Total: decimal.Zero},
	}
	for _, payment := range payments {
		for i := range summaries {
			if summaries[i].Status == payment.Status {
				summaries[i].Count++
				summaries[i].Total = summaries[i].Total.Add(payment.Amount)
			}
		}
	}
	return summaries
}
