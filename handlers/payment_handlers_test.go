package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/volleyleague-backend/models"
	"github.com/fadhlanhapp/volleyleague-backend/repository"
	"github.com/fadhlanhapp/volleyleague-backend/services"
)

type testServer struct {
	router *gin.Engine
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{now: time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)}
	members := repository.NewMemoryMemberRepository(models.Member{ID: "U1"})
	paymentService := services.NewPaymentService(repository.NewMemoryPaymentRepository(), members,
		services.WithClock(func() time.Time { return ts.now }),
	)
	scheduler := services.NewReconciliationScheduler(paymentService, time.Hour, false, nil)
	paymentHandler := NewPaymentHandler(paymentService, scheduler)
	exportHandler := NewExportHandler(services.NewExcelService(paymentService))
	leagueHandler := NewLeagueHandler(services.NewRegistrationService(repository.NewMemoryRegistrationRepository()))

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/payments", paymentHandler.CreatePayment)
	v1.GET("/payments", paymentHandler.ListPayments)
	v1.GET("/payments/export", exportHandler.ExportPayments)
	v1.POST("/payments/reconcile", paymentHandler.ReconcileOverdue)
	v1.GET("/payments/owner/:ownerId", paymentHandler.ListByOwner)
	v1.GET("/payments/status/:status", paymentHandler.ListByStatus)
	v1.GET("/payments/:id", paymentHandler.GetPayment)
	v1.PATCH("/payments/:id/status", paymentHandler.UpdateStatus)
	v1.PUT("/payments/:id/notes", paymentHandler.ReplaceNotes)
	v1.POST("/payments/:id/settle", paymentHandler.SettlePayment)
	v1.DELETE("/payments/:id", paymentHandler.DeletePayment)
	v1.POST("/registrations", leagueHandler.RegisterTeam)
	v1.POST("/sets/evaluate", leagueHandler.EvaluateSet)
	ts.router = router
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodePayment(t *testing.T, w *httptest.ResponseRecorder) models.Payment {
	t.Helper()
	var payment models.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payment))
	return payment
}

func TestPaymentHandlers_CreateAndSettle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": 80.00, "dueDate": "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodePayment(t, w)
	assert.Equal(t, models.StatusPending, created.Status)

	w = ts.do(t, http.MethodPost, "/api/v1/payments/"+created.ID+"/settle", map[string]any{
		"amount": "80.00", "paymentMethod": "transfer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(t, http.MethodGet, "/api/v1/payments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	settled := decodePayment(t, w)
	assert.Equal(t, models.StatusPaid, settled.Status)
	assert.Equal(t, "transfer", settled.PaymentMethod)
	assert.True(t, decimal.NewFromInt(80).Equal(settled.Amount), settled.Amount.String())

	w = ts.do(t, http.MethodDelete, "/api/v1/payments/"+created.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPaymentHandlers_ErrorMapping(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": -5, "dueDate": "2025-03-15",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"validation"`)

	w = ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "nobody", "month": 3, "year": 2025, "amount": 10, "dueDate": "2025-03-15",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var none []models.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &none))
	assert.Empty(t, none)

	w = ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": 10, "dueDate": "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePayment(t, w)

	w = ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": 10, "dueDate": "2025-03-15",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/v1/payments/"+created.ID+"/status", map[string]any{
		"status": "paid", "notes": "note",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "settle endpoint")

	w = ts.do(t, http.MethodPatch, "/api/v1/payments/"+created.ID+"/status", map[string]any{
		"status": "archived",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/payments/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandlers_StatusAndReconcile(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": "45.50", "dueDate": "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodePayment(t, w)

	ts.now = ts.now.AddDate(0, 0, 40)
	w = ts.do(t, http.MethodPost, "/api/v1/payments/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result models.ReconcileResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Updated)

	w = ts.do(t, http.MethodGet, "/api/v1/payments/status/overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overdue []models.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overdue))
	require.Len(t, overdue, 1)
	assert.Equal(t, created.ID, overdue[0].ID)

	w = ts.do(t, http.MethodPatch, "/api/v1/payments/"+created.ID+"/status", map[string]any{
		"status": "PENDING", "notes": "payment plan agreed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodePayment(t, w)
	assert.Equal(t, "marked overdue by reconciliation | payment plan agreed", updated.Notes)

	w = ts.do(t, http.MethodPut, "/api/v1/payments/"+created.ID+"/notes", map[string]any{"notes": "plan: 2 installments"})
	require.Equal(t, http.StatusOK, w.Code)
	replaced := decodePayment(t, w)
	assert.Equal(t, "plan: 2 installments", replaced.Notes)
	assert.Equal(t, models.StatusPending, replaced.Status)

	w = ts.do(t, http.MethodPut, "/api/v1/payments/missing/notes", map[string]any{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/payments/owner/U1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/payments?month=3&year=2025", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byPeriod []models.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byPeriod))
	assert.Len(t, byPeriod, 1)

	w = ts.do(t, http.MethodGet, "/api/v1/payments?month=march&year=2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/payments/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportHandler_ExportPayments(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/v1/payments", map[string]any{
		"ownerId": "U1", "month": 3, "year": 2025, "amount": 10, "dueDate": "2025-03-15",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/payments/export?month=3&year=2025", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Payments_2025-03.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotZero(t, w.Body.Len())
}

func TestLeagueHandlers(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"teamId": "T1", "tournamentId": "CUP", "categoryId": "U18"}

	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/api/v1/registrations", body).Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/v1/registrations", body).Code)

	w := ts.do(t, http.MethodPost, "/api/v1/sets/evaluate", map[string]any{"number": 5, "homePoints": 13, "awayPoints": 15})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"finished":true,"winner":"AWAY"}`, w.Body.String())
}
