package period

import (
	"time"

	"github.com/google/uuid"

	"github.com/importdesk/backend/internal/domain/period"
)

// PeriodResponse is the API view of a financial period
type PeriodResponse struct {
	ID           uuid.UUID  `json:"id"`
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	Label        string     `json:"label"`
	Status       string     `json:"status"`
	LockedAt     *time.Time `json:"locked_at,omitempty"`
	LockedBy     *uuid.UUID `json:"locked_by,omitempty"`
	UnlockedAt   *time.Time `json:"unlocked_at,omitempty"`
	UnlockedBy   *uuid.UUID `json:"unlocked_by,omitempty"`
	UnlockReason string     `json:"unlock_reason,omitempty"`
}

// ToPeriodResponse maps a period aggregate to its API view
func ToPeriodResponse(p *period.FinancialPeriod) PeriodResponse {
	return PeriodResponse{
		ID:           p.ID,
		Year:         p.Year,
		Month:        int(p.Month),
		Label:        p.Label(),
		Status:       p.Status.String(),
		LockedAt:     p.LockedAt,
		LockedBy:     p.LockedBy,
		UnlockedAt:   p.UnlockedAt,
		UnlockedBy:   p.UnlockedBy,
		UnlockReason: p.UnlockReason,
	}
}

// ChecklistResponse reports every closure predicate with its current
// blocker count
type ChecklistResponse struct {
	PeriodLabel              string   `json:"period_label"`
	SalesWithDebt            int64    `json:"sales_with_debt"`
	UnsettledSales           int64    `json:"unsettled_sales"`
	UnconfirmedCorrections   int64    `json:"unconfirmed_corrections"`
	NegativeProfitContainers int64    `json:"negative_profit_containers"`
	DiscrepancySessions      int64    `json:"discrepancy_sessions"`
	PendingSessions          int64    `json:"pending_sessions"`
	ConfirmedSessions        int64    `json:"confirmed_sessions"`
	Lockable                 bool     `json:"lockable"`
	Blockers                 []string `json:"blockers"`
}

// ToChecklistResponse maps a gathered checklist to its API view
func ToChecklistResponse(label string, c period.ClosureChecklist) ChecklistResponse {
	blockers := c.Blockers()
	return ChecklistResponse{
		PeriodLabel:              label,
		SalesWithDebt:            c.SalesWithDebt,
		UnsettledSales:           c.UnsettledSales,
		UnconfirmedCorrections:   c.UnconfirmedCorrections,
		NegativeProfitContainers: c.NegativeProfitContainers,
		DiscrepancySessions:      c.DiscrepancySessions,
		PendingSessions:          c.PendingSessions,
		ConfirmedSessions:        c.ConfirmedSessions,
		Lockable:                 len(blockers) == 0,
		Blockers:                 blockers,
	}
}
