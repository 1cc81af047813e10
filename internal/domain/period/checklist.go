package period

import (
	"fmt"
	"strings"

	"github.com/importdesk/backend/internal/domain/shared"
)

// ClosureChecklist holds the counters a period must clear before it can
// be locked. The numbers are gathered from source rows inside the same
// transaction as the lock itself.
type ClosureChecklist struct {
	// Sales in the period still carrying outstanding debt
	SalesWithDebt int64
	// Sales in the period in DEBT or PARTIALLY_PAID status
	UnsettledSales int64
	// Expense corrections in the period awaiting confirmation
	UnconfirmedCorrections int64
	// Containers whose net profit for the period is negative
	NegativeProfitContainers int64
	// Inventory count sessions still in DISCREPANCY
	DiscrepancySessions int64
	// Inventory count sessions still PENDING confirmation
	PendingSessions int64
	// Inventory count sessions confirmed for the period
	ConfirmedSessions int64
}

// Blockers returns a human-readable description of every predicate that
// fails. An empty slice means the period may be locked.
func (c ClosureChecklist) Blockers() []string {
	var blockers []string
	if c.SalesWithDebt > 0 {
		blockers = append(blockers, fmt.Sprintf("%d sale(s) with outstanding debt", c.SalesWithDebt))
	}
	if c.UnsettledSales > 0 {
		blockers = append(blockers, fmt.Sprintf("%d sale(s) in DEBT or PARTIALLY_PAID status", c.UnsettledSales))
	}
	if c.UnconfirmedCorrections > 0 {
		blockers = append(blockers, fmt.Sprintf("%d unconfirmed expense correction(s)", c.UnconfirmedCorrections))
	}
	if c.NegativeProfitContainers > 0 {
		blockers = append(blockers, fmt.Sprintf("%d container(s) with negative net profit", c.NegativeProfitContainers))
	}
	if c.DiscrepancySessions > 0 {
		blockers = append(blockers, fmt.Sprintf("%d inventory count session(s) with unresolved discrepancies", c.DiscrepancySessions))
	}
	if c.PendingSessions > 0 {
		blockers = append(blockers, fmt.Sprintf("%d inventory count session(s) pending confirmation", c.PendingSessions))
	}
	if c.ConfirmedSessions == 0 {
		blockers = append(blockers, "no confirmed inventory count session for the period")
	}
	return blockers
}

// Passed returns true when every closure predicate holds
func (c ClosureChecklist) Passed() bool {
	return len(c.Blockers()) == 0
}

// NewClosureBlockedError builds the domain error describing why a period
// cannot be locked, naming each specific blocker.
func NewClosureBlockedError(label string, blockers []string) *shared.DomainError {
	return shared.NewDomainError("CLOSURE_BLOCKED",
		fmt.Sprintf("Period %s cannot be locked: %s", label, strings.Join(blockers, "; ")))
}
