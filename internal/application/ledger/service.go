// Package ledger applies, amends and cancels payments against debtor balances.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const serviceName = "ledger"

// CollectorLockKey is the lock key shared by ledger writes and cut finalization
// for one collector.
func CollectorLockKey(collectorID uuid.UUID) string {
	return "collector:" + collectorID.String()
}

// Service is the balance ledger.
type Service struct {
	txScope    TransactionScope
	collectors collection.CollectorRepository
	debtors    collection.DebtorRepository
	payments   collection.PaymentRepository
	locker     shared.KeyedLocker
	publisher  shared.EventPublisher
	clock      shared.Clock
	logger     *zap.Logger
}

// NewService creates a ledger Service. publisher may be nil.
func NewService(
	txScope TransactionScope,
	collectors collection.CollectorRepository,
	debtors collection.DebtorRepository,
	payments collection.PaymentRepository,
	locker shared.KeyedLocker,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *zap.Logger,
) *Service {
	if locker == nil {
		locker = shared.NoopLocker{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &Service{
		txScope:    txScope,
		collectors: collectors,
		debtors:    debtors,
		payments:   payments,
		locker:     locker,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// RegisterPaymentInput is the input of RegisterPayment.
type RegisterPaymentInput struct {
	CollectorID uuid.UUID
	DebtorID    uuid.UUID
	Amount      decimal.Decimal
	// PaymentDate defaults to now when zero
	PaymentDate time.Time
}

// PaymentResult is returned by RegisterPayment and AmendPayment.
type PaymentResult struct {
	Payment    *collection.Payment
	NewBalance decimal.Decimal
}

// CancelResult is returned by CancelPayment.
type CancelResult struct {
	PaymentID       uuid.UUID
	DebtorID        uuid.UUID
	RestoredBalance decimal.Decimal
}

// RegisterPayment applies a collection to a debtor's balance and records it.
func (s *Service) RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*PaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "register_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCollectorID, in.CollectorID.String(),
		telemetry.SpanAttrDebtorID, in.DebtorID.String(),
		telemetry.SpanAttrAmount, in.Amount.String(),
	)

	var result *PaymentResult
	var opErr error
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("register_payment", nil), func(ctx context.Context) {
		result, opErr = s.registerPayment(ctx, in)
	})
	if opErr != nil {
		telemetry.RecordError(span, opErr)
		return nil, opErr
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, result.Payment.ID.String(),
		telemetry.SpanAttrBalance, result.NewBalance.String(),
	)
	return result, nil
}

func (s *Service) registerPayment(ctx context.Context, in RegisterPaymentInput) (*PaymentResult, error) {
	if _, err := s.collectors.FindByID(ctx, in.CollectorID); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}

	unlock, err := s.locker.Lock(ctx, CollectorLockKey(in.CollectorID))
	if err != nil {
		return nil, fmt.Errorf("lock collector: %w", err)
	}
	defer unlock()

	var (
		debtor  *collection.Debtor
		payment *collection.Payment
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DebtorRepo().FindByIDForUpdate(ctx, in.DebtorID)
		if err != nil {
			return err
		}
		if paymentDate.After(now) {
			return shared.NewInvalidDateError("payment date %s is in the future", paymentDate.Format(time.RFC3339))
		}
		p, err := d.ApplyPayment(in.CollectorID, in.Amount, paymentDate, now)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, p); err != nil {
			return err
		}
		if err := repos.DebtorRepo().Save(ctx, d); err != nil {
			return err
		}
		debtor, payment = d, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, debtor)
	s.logger.Info("Payment registered",
		zap.String("payment_id", payment.ID.String()),
		zap.String("debtor_id", debtor.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("payment_type", payment.PaymentType.String()),
		zap.String("new_balance", debtor.Balance.StringFixed(2)),
	)
	return &PaymentResult{Payment: payment, NewBalance: debtor.Balance}, nil
}

// AmendPayment changes the amount of an existing payment; the debtor balance
// moves by old - new.
func (s *Service) AmendPayment(ctx context.Context, paymentID uuid.UUID, newAmount decimal.Decimal) (*PaymentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "amend_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, paymentID.String(),
		telemetry.SpanAttrAmount, newAmount.String(),
	)

	existing, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, CollectorLockKey(existing.CollectorID))
	if err != nil {
		return nil, fmt.Errorf("lock collector: %w", err)
	}
	defer unlock()

	now := s.clock.Now().UTC()
	var (
		debtor  *collection.Debtor
		payment *collection.Payment
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		d, err := repos.DebtorRepo().FindByIDForUpdate(ctx, p.DebtorID)
		if err != nil {
			return err
		}
		if err := d.AmendPayment(p, newAmount, now); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, p); err != nil {
			return err
		}
		if err := repos.DebtorRepo().Save(ctx, d); err != nil {
			return err
		}
		debtor, payment = d, p
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, debtor)
	s.logger.Info("Payment amended",
		zap.String("payment_id", payment.ID.String()),
		zap.String("old_amount", existing.Amount.StringFixed(2)),
		zap.String("new_amount", payment.Amount.StringFixed(2)),
		zap.String("new_balance", debtor.Balance.StringFixed(2)),
	)
	return &PaymentResult{Payment: payment, NewBalance: debtor.Balance}, nil
}

// CancelPayment deletes a payment and restores its amount to the debtor.
func (s *Service) CancelPayment(ctx context.Context, paymentID uuid.UUID) (*CancelResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "cancel_payment")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, paymentID.String())

	existing, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, CollectorLockKey(existing.CollectorID))
	if err != nil {
		return nil, fmt.Errorf("lock collector: %w", err)
	}
	defer unlock()

	now := s.clock.Now().UTC()
	var debtor *collection.Debtor
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.PaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		d, err := repos.DebtorRepo().FindByIDForUpdate(ctx, p.DebtorID)
		if err != nil {
			return err
		}
		if err := d.CancelPayment(p, now); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Delete(ctx, p.ID); err != nil {
			return err
		}
		if err := repos.DebtorRepo().Save(ctx, d); err != nil {
			return err
		}
		debtor = d
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, debtor)
	s.logger.Info("Payment cancelled",
		zap.String("payment_id", paymentID.String()),
		zap.String("restored_balance", debtor.Balance.StringFixed(2)),
	)
	return &CancelResult{PaymentID: paymentID, DebtorID: debtor.ID, RestoredBalance: debtor.Balance}, nil
}

// GetPayment returns a payment by ID.
func (s *Service) GetPayment(ctx context.Context, paymentID uuid.UUID) (*collection.Payment, error) {
	return s.payments.FindByID(ctx, paymentID)
}

// ListDebtorPayments lists a debtor's payments, newest first.
func (s *Service) ListDebtorPayments(ctx context.Context, debtorID uuid.UUID, filter shared.Filter) (shared.Paginated[collection.Payment], error) {
	if _, err := s.debtors.FindByID(ctx, debtorID); err != nil {
		return shared.Paginated[collection.Payment]{}, err
	}
	items, total, err := s.payments.FindByDebtor(ctx, debtorID, filter)
	if err != nil {
		return shared.Paginated[collection.Payment]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// publishEvents publishes after commit. A failed publish is logged only; the
// ledger change is already durable.
func (s *Service) publishEvents(ctx context.Context, debtor *collection.Debtor) {
	events := debtor.GetDomainEvents()
	debtor.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish ledger events",
			zap.String("debtor_id", debtor.ID.String()),
			zap.Error(err),
		)
	}
}
