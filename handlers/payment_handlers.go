package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/services"
	"github.com/fadhlanhapp/volleyleague-backend/utils"
)

// ReconcileTrigger runs an on-demand overdue sweep
type ReconcileTrigger interface {
	RunOnce(ctx context.Context) (*models.ReconcileResult, error)
}

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *services.PaymentService
	reconciler     ReconcileTrigger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, reconciler ReconcileTrigger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, reconciler: reconciler}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := utils.ParseDate(req.DueDate, "due date")
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		dueDate = parsed
	}

	period := models.Period{Month: req.Month, Year: req.Year}
	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req.OwnerID, period, req.Amount, dueDate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, payment)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payment)
}

// ListPayments handles GET /payments.
// ?month=&year= filters by period, ?from=&to= by due date, otherwise all payments.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		payments []models.Payment
		err      error
	)
	switch {
	case c.Query("month") != "" || c.Query("year") != "":
		var period models.Period
		period, err = periodFromQuery(c)
		if err == nil {
			payments, err = h.paymentService.ListByPeriod(ctx, period)
		}
	case c.Query("from") != "" || c.Query("to") != "":
		var from, to time.Time
		if from, err = utils.ParseDate(c.Query("from"), "from"); err == nil {
			if to, err = utils.ParseDate(c.Query("to"), "to"); err == nil {
				payments, err = h.paymentService.ListDueBetween(ctx, from, to)
			}
		}
	default:
		payments, err = h.paymentService.ListAll(ctx)
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, payments)
}

// ListByOwner handles GET /payments/owner/:ownerId
func (h *PaymentHandler) ListByOwner(c *gin.Context) {
	payments, err := h.paymentService.ListByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payments)
}

// ListByStatus handles GET /payments/status/:status
func (h *PaymentHandler) ListByStatus(c *gin.Context) {
	status, err := models.ParsePaymentStatus(c.Param("status"))
	if err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	payments, err := h.paymentService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payments)
}

// UpdateStatus handles PATCH /payments/:id/status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	var status models.PaymentStatus
	if req.Status != "" {
		parsed, err := models.ParsePaymentStatus(req.Status)
		if err != nil {
			utils.HandleError(c, utils.NewValidationError(err.Error()))
			return
		}
		status = parsed
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), c.Param("id"), status, req.Notes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payment)
}

// ReplaceNotes handles PUT /payments/:id/notes
func (h *PaymentHandler) ReplaceNotes(c *gin.Context) {
	var req models.ReplaceNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	payment, err := h.paymentService.ReplaceNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payment)
}

// SettlePayment handles POST /payments/:id/settle
func (h *PaymentHandler) SettlePayment(c *gin.Context) {
	var req models.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	ctx := c.Request.Context()
	var (
		payment *models.Payment
		err     error
	)
	if req.ReceiptPath != "" {
		payment, err = h.paymentService.SettleWithReceipt(ctx, c.Param("id"), req.Amount, req.PaymentMethod, req.ReceiptPath)
	} else {
		payment, err = h.paymentService.Settle(ctx, c.Param("id"), req.Amount, req.PaymentMethod)
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, payment)
}

// DeletePayment handles DELETE /payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Payment deleted successfully"})
}

// ReconcileOverdue handles POST /payments/reconcile
func (h *PaymentHandler) ReconcileOverdue(c *gin.Context) {
	result, err := h.reconciler.RunOnce(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, result)
}

func periodFromQuery(c *gin.Context) (models.Period, error) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return models.Period{}, utils.NewValidationError("month must be a number")
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return models.Period{}, utils.NewValidationError("year must be a number")
	}
	return models.Period{Month: month, Year: year}, nil
}
