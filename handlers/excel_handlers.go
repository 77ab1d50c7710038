package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/volleyleague-backend/services"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// ExportHandler serves spreadsheet reports
type ExportHandler struct {
	excelService *services.ExcelService
}

// NewExportHandler creates a new export handler
func NewExportHandler(excelService *services.ExcelService) *ExportHandler {
	return &ExportHandler{excelService: excelService}
}

// ExportPayments handles GET /payments/export?month=&year=
func (h *ExportHandler) ExportPayments(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	excelFile, filename, err := h.excelService.ExportPaymentsToExcel(c.Request.Context(), period)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer excelFile.Close()

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		slog.Error("Failed to write Excel file", "period", period.String(), "error", err)
	}
}
