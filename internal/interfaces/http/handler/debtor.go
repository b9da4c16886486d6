package handler

import (
	"context"
	"time"

	appcollection "github.com/cobranza/backend/internal/application/collection"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtorService originates and renews contracts
type DebtorService interface {
	Create(ctx context.Context, in appcollection.CreateDebtorInput) (*collection.Debtor, error)
	Get(ctx context.Context, id uuid.UUID) (*collection.Debtor, error)
	List(ctx context.Context, filter collection.DebtorFilter) (shared.Paginated[collection.Debtor], error)
	Renew(ctx context.Context, debtorID uuid.UUID, terms appcollection.TermsInput) (*collection.Debtor, error)
	ListContracts(ctx context.Context, debtorID uuid.UUID) ([]collection.Contract, error)
}

// PaymentHistory lists a debtor's payments
type PaymentHistory interface {
	ListDebtorPayments(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) (shared.Paginated[collection.Payment], error)
}

// TermsRequest carries the money terms of a contract
type TermsRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"decimal_positive" swaggertype:"string" example:"1000.00"`
	TotalToPay       decimal.Decimal `json:"total_to_pay" binding:"decimal_positive" swaggertype:"string" example:"1300.00"`
	FirstPayment     decimal.Decimal `json:"first_payment" binding:"decimal_gte0" swaggertype:"string" example:"100.00"`
	SuggestedPayment decimal.Decimal `json:"suggested_payment" binding:"decimal_gte0" swaggertype:"string" example:"100.00"`
	PaymentType      string          `json:"payment_type" binding:"required,oneof=diario semanal" example:"semanal"`
}

func (t TermsRequest) toInput() appcollection.TermsInput {
	return appcollection.TermsInput{
		Amount:           t.Amount,
		TotalToPay:       t.TotalToPay,
		FirstPayment:     t.FirstPayment,
		SuggestedPayment: t.SuggestedPayment,
		Cadence:          t.PaymentType,
	}
}

// GuarantorRequest is the co-signer of a contract
type GuarantorRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address" binding:"max=255"`
}

// CreateDebtorRequest originates a contract
// @Description Request body for creating a debtor
type CreateDebtorRequest struct {
	TermsRequest
	ContractNumber string           `json:"contract_number" binding:"required,max=50" example:"C-2024-0012"`
	Name           string           `json:"name" binding:"required,max=100" example:"María López"`
	Phone          string           `json:"phone" binding:"max=20" example:"+525598765432"`
	Address        string           `json:"address" binding:"max=255" example:"Calle 5 #12"`
	CollectorID    string           `json:"collector_id" binding:"required,uuid" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Guarantor      GuarantorRequest `json:"guarantor"`
	CreatedAt      *time.Time       `json:"created_at"`
}

// RenewDebtorRequest starts a new contract for a paid-off debtor
// @Description Request body for renewing a debtor's contract
type RenewDebtorRequest struct {
	TermsRequest
}

// DebtorResponse represents a debtor
// @Description Debtor
type DebtorResponse struct {
	ID               uuid.UUID            `json:"id"`
	ContractNumber   string               `json:"contract_number"`
	Name             string               `json:"name"`
	Phone            string               `json:"phone"`
	Address          string               `json:"address"`
	CollectorID      uuid.UUID            `json:"collector_id"`
	Amount           decimal.Decimal      `json:"amount" swaggertype:"string"`
	TotalToPay       decimal.Decimal      `json:"total_to_pay" swaggertype:"string"`
	FirstPayment     decimal.Decimal      `json:"first_payment" swaggertype:"string"`
	SuggestedPayment decimal.Decimal      `json:"suggested_payment" swaggertype:"string"`
	Balance          decimal.Decimal      `json:"balance" swaggertype:"string"`
	PaymentType      string               `json:"payment_type"`
	ContractStart    time.Time            `json:"contract_start"`
	ContractEndDate  *time.Time           `json:"contract_end_date,omitempty"`
	Renewals         int                  `json:"renewals"`
	Guarantor        collection.Guarantor `json:"guarantor"`
	CreatedAt        time.Time            `json:"created_at"`
}

// ContractResponse represents an archived contract
// @Description Archived contract
type ContractResponse struct {
	ID             uuid.UUID       `json:"id"`
	ContractNumber string          `json:"contract_number"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	TotalToPay     decimal.Decimal `json:"total_to_pay" swaggertype:"string"`
	FirstPayment   decimal.Decimal `json:"first_payment" swaggertype:"string"`
	Balance        decimal.Decimal `json:"balance" swaggertype:"string"`
	PaymentType    string          `json:"payment_type"`
	StartedAt      time.Time       `json:"started_at"`
	EndedAt        time.Time       `json:"ended_at"`
}

func toDebtorResponse(d *collection.Debtor, loc *time.Location) DebtorResponse {
	resp := DebtorResponse{
		ID:               d.ID,
		ContractNumber:   d.ContractNumber,
		Name:             d.Name,
		Phone:            d.Phone,
		Address:          d.Address,
		CollectorID:      d.CollectorID,
		Amount:           d.Amount,
		TotalToPay:       d.TotalToPay,
		FirstPayment:     d.FirstPayment,
		SuggestedPayment: d.SuggestedPayment,
		Balance:          d.Balance,
		PaymentType:      string(d.Cadence),
		ContractStart:    d.ContractStart.In(loc),
		Renewals:         d.Renewals,
		Guarantor:        d.Guarantor,
		CreatedAt:        d.CreatedAt.In(loc),
	}
	if d.ContractEndDate != nil {
		end := d.ContractEndDate.In(loc)
		resp.ContractEndDate = &end
	}
	return resp
}

// DebtorHandler serves debtor origination, lookup and history
type DebtorHandler struct {
	BaseHandler
	debtors  DebtorService
	payments PaymentHistory
	loc      *time.Location
}

// NewDebtorHandler creates a new DebtorHandler
func NewDebtorHandler(debtors DebtorService, payments PaymentHistory, loc *time.Location) *DebtorHandler {
	return &DebtorHandler{debtors: debtors, payments: payments, loc: loc}
}

// loadDebtor fetches the path debtor and checks the caller owns its collector
func (h *DebtorHandler) loadDebtor(c *gin.Context) (*collection.Debtor, bool) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	d, err := h.debtors.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	if !canAccess(c, d.CollectorID) {
		h.Forbidden(c)
		return nil, false
	}
	return d, true
}

// Create godoc
// @ID           createDebtor
// @Summary      Originate a debtor contract
// @Description  The opening balance is total_to_pay minus first_payment.
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Param        request body CreateDebtorRequest true "Debtor"
// @Success      201 {object} APIResponse[DebtorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debtors [post]
func (h *DebtorHandler) Create(c *gin.Context) {
	var req CreateDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	collectorID := uuid.MustParse(req.CollectorID)
	if !canAccess(c, collectorID) {
		h.Forbidden(c)
		return
	}

	in := appcollection.CreateDebtorInput{
		ContractNumber: req.ContractNumber,
		Name:           req.Name,
		Phone:          req.Phone,
		Address:        req.Address,
		CollectorID:    collectorID,
		Terms:          req.toInput(),
		Guarantor: collection.Guarantor{
			Name:    req.Guarantor.Name,
			Phone:   req.Guarantor.Phone,
			Address: req.Guarantor.Address,
		},
	}
	if req.CreatedAt != nil {
		in.CreatedAt = *req.CreatedAt
	}

	d, err := h.debtors.Create(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toDebtorResponse(d, h.loc))
}

// Get godoc
// @ID           getDebtor
// @Summary      Get a debtor
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID" format(uuid)
// @Success      200 {object} APIResponse[DebtorResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debtors/{id} [get]
func (h *DebtorHandler) Get(c *gin.Context) {
	d, ok := h.loadDebtor(c)
	if !ok {
		return
	}
	h.Success(c, toDebtorResponse(d, h.loc))
}

// ListByCollector godoc
// @ID           listDebtorsByCollector
// @Summary      List a collector's debtors
// @Tags         debtors
// @Produce      json
// @Param        collectorId path string true "Collector ID" format(uuid)
// @Param        active query bool false "Only debtors with a positive balance"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]DebtorResponse]
// @Security     BearerAuth
// @Router       /debtors/collector/{collectorId} [get]
func (h *DebtorHandler) ListByCollector(c *gin.Context) {
	collectorID, ok := h.collectorParam(c, "collectorId")
	if !ok {
		return
	}
	filter := collection.DebtorFilter{
		Filter:      pageFilter(c),
		CollectorID: &collectorID,
		ActiveOnly:  c.Query("active") == "true",
	}
	page, err := h.debtors.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]DebtorResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toDebtorResponse(&page.Items[i], h.loc)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Renew godoc
// @ID           renewDebtor
// @Summary      Renew a paid-off contract
// @Description  Archives the current contract and applies the new terms. The balance must be zero.
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Param        id path string true "Debtor ID" format(uuid)
// @Param        request body RenewDebtorRequest true "New terms"
// @Success      200 {object} APIResponse[DebtorResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debtors/{id}/renew [post]
func (h *DebtorHandler) Renew(c *gin.Context) {
	d, ok := h.loadDebtor(c)
	if !ok {
		return
	}
	var req RenewDebtorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	renewed, err := h.debtors.Renew(c.Request.Context(), d.ID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDebtorResponse(renewed, h.loc))
}

// Payments godoc
// @ID           listDebtorPayments
// @Summary      List a debtor's payments
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debtors/{id}/payments [get]
func (h *DebtorHandler) Payments(c *gin.Context) {
	d, ok := h.loadDebtor(c)
	if !ok {
		return
	}
	page, err := h.payments.ListDebtorPayments(c.Request.Context(), d.ID, pageFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]PaymentResponse, len(page.Items))
	for i := range page.Items {
		items[i] = toPaymentResponse(&page.Items[i], h.loc)
	}
	h.SuccessWithMeta(c, items, page.Total, page.Page, page.PageSize)
}

// Contracts godoc
// @ID           listDebtorContracts
// @Summary      List a debtor's archived contracts
// @Tags         debtors
// @Produce      json
// @Param        id path string true "Debtor ID" format(uuid)
// @Success      200 {object} APIResponse[[]ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /debtors/{id}/contracts [get]
func (h *DebtorHandler) Contracts(c *gin.Context) {
	d, ok := h.loadDebtor(c)
	if !ok {
		return
	}
	contracts, err := h.debtors.ListContracts(c.Request.Context(), d.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]ContractResponse, len(contracts))
	for i, ct := range contracts {
		items[i] = ContractResponse{
			ID:             ct.ID,
			ContractNumber: ct.ContractNumber,
			Amount:         ct.Amount,
			TotalToPay:     ct.TotalToPay,
			FirstPayment:   ct.FirstPayment,
			Balance:        ct.Balance,
			PaymentType:    string(ct.Cadence),
			StartedAt:      ct.StartedAt.In(h.loc),
			EndedAt:        ct.EndedAt.In(h.loc),
		}
	}
	h.Success(c, items)
}
