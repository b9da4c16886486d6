package collection

import (
	"strings"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
)

// Collector is a field agent who collects payments from debtors.
// The credential hash is owned by the external auth service and stored opaquely.
type Collector struct {
	shared.BaseAggregateRoot
	Name           string `json:"name"`
	PhoneNumber    string `json:"phone_number"`
	CredentialHash string `json:"-"`
}

// NewCollector creates a new collector
func NewCollector(name, phoneNumber string) (*Collector, error) {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if name == "" {
		return nil, shared.NewValidationError("collector name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("collector name cannot exceed 100 characters")
	}
	if phoneNumber == "" {
		return nil, shared.NewValidationError("collector phone number cannot be empty")
	}
	return &Collector{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
	}, nil
}

// UpdateContact changes the editable collector attributes
func (c *Collector) UpdateContact(name, phoneNumber string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("collector name cannot be empty")
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return shared.NewValidationError("collector phone number cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	c.PhoneNumber = strings.TrimSpace(phoneNumber)
	c.UpdatedAt = time.Now().UTC()
	c.IncrementVersion()
	return nil
}
