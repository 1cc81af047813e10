package persistence

import (
	"strings"
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

// PeriodSortFields contains allowed sort fields for financial periods
var PeriodSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"year":       true,
	"month":      true,
	"status":     true,
	"locked_at":  true,
}

// ContainerSortFields contains allowed sort fields for containers
var ContainerSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"number":             true,
	"status":             true,
	"total_purchase_usd": true,
	"total_expenses_usd": true,
	"net_profit_usd":     true,
	"arrived_at":         true,
	"closed_at":          true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"code":                 true,
	"name":                 true,
	"status":               true,
	"credit_limit_usd":     true,
	"outstanding_debt_usd": true,
}

// InvestorSortFields contains allowed sort fields for investors
var InvestorSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"active":             true,
	"total_invested_usd": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"number":           true,
	"client_name":      true,
	"mode":             true,
	"status":           true,
	"sold_at":          true,
	"due_date":         true,
	"total_amount_usd": true,
	"paid_amount_usd":  true,
	"debt_amount_usd":  true,
}

// CountSessionSortFields contains allowed sort fields for count sessions
var CountSessionSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"counted_at":   true,
	"confirmed_at": true,
}

// AuditSortFields contains allowed sort fields for audit entries
var AuditSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"action":      true,
	"entity_type": true,
}
