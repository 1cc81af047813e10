package partner

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// Investor is a capital contributor referenced by container
// investments. The per-container stakes and payout history live on the
// Container aggregate; this registry only carries identity and totals
// for reporting.
type Investor struct {
	shared.BaseAggregateRoot
	Name   string
	Phone  string
	Notes  string
	Active bool
	// TotalInvestedUSD is a reporting column refreshed from the
	// container investments, not a source of truth.
	TotalInvestedUSD decimal.Decimal
}

// NewInvestor creates a new investor
func NewInvestor(name string) (*Investor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Investor name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Investor name cannot exceed 200 characters")
	}

	investor := &Investor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Active:            true,
		TotalInvestedUSD:  decimal.Zero,
	}

	investor.AddDomainEvent(NewInvestorCreatedEvent(investor))
	return investor, nil
}

// Update updates the investor's details
func (i *Investor) Update(name, phone, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Investor name cannot be empty")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	i.Name = name
	i.Phone = phone
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// RefreshTotalInvested replaces the reporting total
func (i *Investor) RefreshTotalInvested(total decimal.Decimal) {
	i.TotalInvestedUSD = total
	i.UpdatedAt = time.Now()
}

// Deactivate hides the investor from new investment registration
func (i *Investor) Deactivate() {
	i.Active = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
