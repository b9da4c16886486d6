package models

import (
	"time"

	"github.com/cobranza/backend/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectorModel is the persistence model for the Collector aggregate.
type CollectorModel struct {
	AggregateModel
	Name           string `gorm:"type:varchar(100);not null"`
	PhoneNumber    string `gorm:"type:varchar(30);not null;uniqueIndex:idx_collectors_phone"`
	CredentialHash string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CollectorModel) TableName() string {
	return "collectors"
}

// ToDomain converts the persistence model to a domain Collector.
func (m *CollectorModel) ToDomain() *collection.Collector {
	return &collection.Collector{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		PhoneNumber:       m.PhoneNumber,
		CredentialHash:    m.CredentialHash,
	}
}

// CollectorModelFromDomain creates a persistence model from a domain Collector.
func CollectorModelFromDomain(c *collection.Collector) *CollectorModel {
	m := &CollectorModel{
		Name:           c.Name,
		PhoneNumber:    c.PhoneNumber,
		CredentialHash: c.CredentialHash,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// DebtorModel is the persistence model for the Debtor aggregate.
type DebtorModel struct {
	AggregateModel
	ContractNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_debtors_contract_number"`
	Name             string             `gorm:"type:varchar(200);not null"`
	Phone            string             `gorm:"type:varchar(30)"`
	Address          string             `gorm:"type:text"`
	CollectorID      uuid.UUID          `gorm:"type:uuid;not null;index:idx_debtors_collector"`
	Amount           decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	TotalToPay       decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	FirstPayment     decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	SuggestedPayment decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0"`
	Balance          decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PaymentType      collection.Cadence `gorm:"type:varchar(10);not null;default:'diario'"`
	ContractStart    time.Time          `gorm:"not null"`
	ContractEndDate  *time.Time
	Renewals         int    `gorm:"not null;default:0"`
	GuarantorName    string `gorm:"column:guarantor;type:varchar(200)"`
	GuarantorPhone   string `gorm:"type:varchar(30)"`
	GuarantorAddress string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DebtorModel) TableName() string {
	return "debtors"
}

// ToDomain converts the persistence model to a domain Debtor.
func (m *DebtorModel) ToDomain() *collection.Debtor {
	d := &collection.Debtor{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ContractNumber:    m.ContractNumber,
		Name:              m.Name,
		Phone:             m.Phone,
		Address:           m.Address,
		CollectorID:       m.CollectorID,
		Amount:            m.Amount,
		TotalToPay:        m.TotalToPay,
		FirstPayment:      m.FirstPayment,
		SuggestedPayment:  m.SuggestedPayment,
		Balance:           m.Balance,
		Cadence:           m.PaymentType,
		ContractStart:     m.ContractStart.UTC(),
		Renewals:          m.Renewals,
		Guarantor: collection.Guarantor{
			Name:    m.GuarantorName,
			Phone:   m.GuarantorPhone,
			Address: m.GuarantorAddress,
		},
	}
	if m.ContractEndDate != nil {
		end := m.ContractEndDate.UTC()
		d.ContractEndDate = &end
	}
	return d
}

// DebtorModelFromDomain creates a persistence model from a domain Debtor.
func DebtorModelFromDomain(d *collection.Debtor) *DebtorModel {
	m := &DebtorModel{
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
		PaymentType:      d.Cadence,
		ContractStart:    d.ContractStart.UTC(),
		Renewals:         d.Renewals,
		GuarantorName:    d.Guarantor.Name,
		GuarantorPhone:   d.Guarantor.Phone,
		GuarantorAddress: d.Guarantor.Address,
	}
	if d.ContractEndDate != nil {
		end := d.ContractEndDate.UTC()
		m.ContractEndDate = &end
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}

// PaymentModel is the persistence model for a Payment (cobro).
type PaymentModel struct {
	BaseModel
	CollectorID uuid.UUID              `gorm:"type:uuid;not null;index:idx_payments_collector_date,priority:1"`
	DebtorID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal        `gorm:"type:numeric(12,2);not null"`
	PaymentDate time.Time              `gorm:"not null;index:idx_payments_collector_date,priority:2"`
	PaymentType collection.PaymentType `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *collection.Payment {
	return &collection.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		CollectorID: m.CollectorID,
		DebtorID:    m.DebtorID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate.UTC(),
		PaymentType: m.PaymentType,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment.
func PaymentModelFromDomain(p *collection.Payment) *PaymentModel {
	m := &PaymentModel{
		CollectorID: p.CollectorID,
		DebtorID:    p.DebtorID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.UTC(),
		PaymentType: p.PaymentType,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ContractModel is the persistence model for an archived Contract.
type ContractModel struct {
	BaseModel
	DebtorID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	CollectorID    uuid.UUID          `gorm:"type:uuid;not null"`
	ContractNumber string             `gorm:"type:varchar(50);not null"`
	DebtorName     string             `gorm:"type:varchar(200);not null"`
	Amount         decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	TotalToPay     decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	FirstPayment   decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Balance        decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PaymentType    collection.Cadence `gorm:"type:varchar(10);not null"`
	StartedAt      time.Time          `gorm:"not null"`
	EndedAt        time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract.
func (m *ContractModel) ToDomain() *collection.Contract {
	return &collection.Contract{
		BaseEntity:     m.BaseModel.ToDomain(),
		DebtorID:       m.DebtorID,
		CollectorID:    m.CollectorID,
		ContractNumber: m.ContractNumber,
		DebtorName:     m.DebtorName,
		Amount:         m.Amount,
		TotalToPay:     m.TotalToPay,
		FirstPayment:   m.FirstPayment,
		Balance:        m.Balance,
		Cadence:        m.PaymentType,
		StartedAt:      m.StartedAt.UTC(),
		EndedAt:        m.EndedAt.UTC(),
	}
}

// ContractModelFromDomain creates a persistence model from a domain Contract.
func ContractModelFromDomain(c *collection.Contract) *ContractModel {
	m := &ContractModel{
		DebtorID:       c.DebtorID,
		CollectorID:    c.CollectorID,
		ContractNumber: c.ContractNumber,
		DebtorName:     c.DebtorName,
		Amount:         c.Amount,
		TotalToPay:     c.TotalToPay,
		FirstPayment:   c.FirstPayment,
		Balance:        c.Balance,
		PaymentType:    c.Cadence,
		StartedAt:      c.StartedAt.UTC(),
		EndedAt:        c.EndedAt.UTC(),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
