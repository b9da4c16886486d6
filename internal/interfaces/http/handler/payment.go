package handler

import (
	"context"
	"time"

	"github.com/cobranza/backend/internal/application/ledger"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService is the balance ledger
type PaymentService interface {
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*collection.Payment, error)
	RegisterPayment(ctx context.Context, in ledger.RegisterPaymentInput) (*ledger.PaymentResult, error)
	AmendPayment(ctx context.Context, paymentID uuid.UUID, newAmount decimal.Decimal) (*ledger.PaymentResult, error)
	CancelPayment(ctx context.Context, paymentID uuid.UUID) (*ledger.CancelResult, error)
}

// RegisterPaymentRequest records a collection
// @Description Request body for registering a payment
type RegisterPaymentRequest struct {
	CollectorID string          `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	DebtorID    string          `json:"debtor_id" binding:"required,uuid" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Amount      decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"250.00"`
	PaymentDate *time.Time      `json:"payment_date" example:"2024-05-01T10:30:00-06:00"`
}

// AmendPaymentRequest changes a payment's amount
// @Description Request body for amending a payment
type AmendPaymentRequest struct {
	NewAmount decimal.Decimal `json:"new_amount" binding:"money" swaggertype:"string" example:"300.00"`
}

// PaymentResponse represents a payment
// @Description Payment
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	CollectorID uuid.UUID       `json:"collector_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	PaymentDate time.Time       `json:"payment_date"`
	PaymentType string          `json:"payment_type" example:"normal"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentResultResponse is the payment plus the debtor's new balance
type PaymentResultResponse struct {
	Payment    PaymentResponse `json:"payment"`
	NewBalance decimal.Decimal `json:"new_balance" swaggertype:"string" example:"750.00"`
}

// CancelPaymentResponse reports the balance restored by a cancellation
type CancelPaymentResponse struct {
	PaymentID       uuid.UUID       `json:"payment_id"`
	DebtorID        uuid.UUID       `json:"debtor_id"`
	RestoredBalance decimal.Decimal `json:"restored_balance" swaggertype:"string" example:"1000.00"`
}

func toPaymentResponse(p *collection.Payment, loc *time.Location) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		CollectorID: p.CollectorID,
		DebtorID:    p.DebtorID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.In(loc),
		PaymentType: p.PaymentType.String(),
		CreatedAt:   p.CreatedAt.In(loc),
	}
}

// PaymentHandler serves the ledger operations
type PaymentHandler struct {
	BaseHandler
	payments PaymentService
	loc      *time.Location
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments PaymentService, loc *time.Location) *PaymentHandler {
	return &PaymentHandler{payments: payments, loc: loc}
}

// Register godoc
// @ID           registerPayment
// @Summary      Register a payment
// @Description  Apply a collection to the debtor's balance. A payment that brings the balance to zero is a liquidation. Send Idempotency-Key to make retries safe.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client-generated key for safe retries"
// @Param        request body RegisterPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[PaymentResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID := uuid.MustParse(req.CollectorID)
	if !canAccess(c, collectorID) {
		h.Forbidden(c)
		return
	}

	in := ledger.RegisterPaymentInput{
		CollectorID: collectorID,
		DebtorID:    uuid.MustParse(req.DebtorID),
		Amount:      req.Amount,
	}
	if req.PaymentDate != nil {
		in.PaymentDate = *req.PaymentDate
	}

	result, err := h.payments.RegisterPayment(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, PaymentResultResponse{
		Payment:    toPaymentResponse(result.Payment, h.loc),
		NewBalance: result.NewBalance,
	})
}

// Amend godoc
// @ID           amendPayment
// @Summary      Amend a payment amount
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body AmendPaymentRequest true "New amount"
// @Success      200 {object} APIResponse[PaymentResultResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Amend(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req AmendPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if !h.authorizePayment(c, id) {
		return
	}

	result, err := h.payments.AmendPayment(c.Request.Context(), id, req.NewAmount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, PaymentResultResponse{
		Payment:    toPaymentResponse(result.Payment, h.loc),
		NewBalance: result.NewBalance,
	})
}

// Cancel godoc
// @ID           cancelPayment
// @Summary      Cancel a payment
// @Description  Delete the payment and restore its amount to the debtor's balance.
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[CancelPaymentResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if !h.authorizePayment(c, id) {
		return
	}
	result, err := h.payments.CancelPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CancelPaymentResponse{
		PaymentID:       result.PaymentID,
		DebtorID:        result.DebtorID,
		RestoredBalance: result.RestoredBalance,
	})
}

// authorizePayment checks the caller may act on the payment's collector
func (h *PaymentHandler) authorizePayment(c *gin.Context, id uuid.UUID) bool {
	p, err := h.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return false
	}
	if !canAccess(c, p.CollectorID) {
		h.Forbidden(c)
		return false
	}
	return true
}
