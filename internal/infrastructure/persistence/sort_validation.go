package persistence

import (
	"strings"

	"github.com/cobranza/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CollectorSortFields contains allowed sort fields for collectors
var CollectorSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone_number": true,
}

// DebtorSortFields contains allowed sort fields for debtors
var DebtorSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"contract_number":   true,
	"balance":           true,
	"total_to_pay":      true,
	"contract_end_date": true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"created_at":   true,
	"payment_date": true,
	"amount":       true,
}

// CutSortFields contains allowed sort fields for daily cuts and pre-cuts
var CutSortFields = map[string]bool{
	"created_at":     true,
	"window_start":   true,
	"date":           true,
	"folio":          true,
	"cobranza_total": true,
}

// WeeklyCutSortFields contains allowed sort fields for weekly cuts
var WeeklyCutSortFields = map[string]bool{
	"created_at":  true,
	"start_date":  true,
	"folio":       true,
	"saldo_final": true,
}

// paginate applies a validated ORDER BY plus LIMIT/OFFSET from the filter
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}
	return query
}
