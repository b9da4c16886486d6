package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	appcollection "github.com/cobranza/backend/internal/application/collection"
	"github.com/cobranza/backend/internal/application/ledger"
	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/auth"
	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/cobranza/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mexicoCity = mustLoad("America/Mexico_City")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// newTestEngine returns an engine with request IDs and, when claims is not
// nil, a fake authenticated caller
func newTestEngine(claims *auth.Claims) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, claims)
			c.Next()
		})
	}
	return r
}

func collectorClaims(id uuid.UUID) *auth.Claims {
	c := &auth.Claims{Role: auth.RoleCollector, CollectorID: id.String()}
	c.Subject = "user-" + id.String()[:8]
	return c
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes a response with its data left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RegisterPayment(ctx context.Context, in ledger.RegisterPaymentInput) (*ledger.PaymentResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Payment), args.Error(1)
}

func (m *MockPaymentService) AmendPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.PaymentResult, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentResult), args.Error(1)
}

func (m *MockPaymentService) CancelPayment(ctx context.Context, id uuid.UUID) (*ledger.CancelResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.CancelResult), args.Error(1)
}

func (m *MockPaymentService) ListDebtorPayments(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) (shared.Paginated[collection.Payment], error) {
	args := m.Called(ctx, debtorID, filter)
	return args.Get(0).(shared.Paginated[collection.Payment]), args.Error(1)
}

type MockCutService struct {
	mock.Mock
}

func (m *MockCutService) CreatePreCut(ctx context.Context, in appreconciliation.CreatePreCutInput) (*reconciliation.PreCut, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.PreCut), args.Error(1)
}

func (m *MockCutService) FinalizeDailyCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.Cut, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.Cut), args.Error(1)
}

func (m *MockCutService) FinalizeManualDailyCut(ctx context.Context, collectorID uuid.UUID, date string) (*reconciliation.Cut, error) {
	args := m.Called(ctx, collectorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.Cut), args.Error(1)
}

func (m *MockCutService) CreateWeeklyCut(ctx context.Context, in appreconciliation.CreateWeeklyCutInput) (*reconciliation.WeeklyCut, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.WeeklyCut), args.Error(1)
}

func (m *MockCutService) PreviewWeek(date string) (*appreconciliation.WeekPreview, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appreconciliation.WeekPreview), args.Error(1)
}

func (m *MockCutService) ListDailyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.Cut], error) {
	args := m.Called(ctx, collectorID, filter)
	return args.Get(0).(shared.Paginated[reconciliation.Cut]), args.Error(1)
}

func (m *MockCutService) ListWeeklyCuts(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) (shared.Paginated[reconciliation.WeeklyCut], error) {
	args := m.Called(ctx, collectorID, filter)
	return args.Get(0).(shared.Paginated[reconciliation.WeeklyCut]), args.Error(1)
}

func (m *MockCutService) LatestPreCut(ctx context.Context, collectorID uuid.UUID) (*reconciliation.PreCut, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.PreCut), args.Error(1)
}

func (m *MockCutService) GetWeeklyCut(ctx context.Context, id uuid.UUID) (*reconciliation.WeeklyCut, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconciliation.WeeklyCut), args.Error(1)
}

func (m *MockCutService) DeleteCut(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockCollectorService struct {
	mock.Mock
}

func (m *MockCollectorService) Create(ctx context.Context, in appcollection.CreateCollectorInput) (*collection.Collector, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collector), args.Error(1)
}

func (m *MockCollectorService) Get(ctx context.Context, id uuid.UUID) (*collection.Collector, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collector), args.Error(1)
}

func (m *MockCollectorService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[collection.Collector], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[collection.Collector]), args.Error(1)
}

type MockDebtorService struct {
	mock.Mock
}

func (m *MockDebtorService) Create(ctx context.Context, in appcollection.CreateDebtorInput) (*collection.Debtor, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debtor), args.Error(1)
}

func (m *MockDebtorService) Get(ctx context.Context, id uuid.UUID) (*collection.Debtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debtor), args.Error(1)
}

func (m *MockDebtorService) List(ctx context.Context, filter collection.DebtorFilter) (shared.Paginated[collection.Debtor], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[collection.Debtor]), args.Error(1)
}

func (m *MockDebtorService) Renew(ctx context.Context, id uuid.UUID, terms appcollection.TermsInput) (*collection.Debtor, error) {
	args := m.Called(ctx, id, terms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debtor), args.Error(1)
}

func (m *MockDebtorService) ListContracts(ctx context.Context, id uuid.UUID) ([]collection.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Contract), args.Error(1)
}
