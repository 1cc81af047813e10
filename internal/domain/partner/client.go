package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is a buyer in the sales ledger. OutstandingDebtUSD is the
// rolling sum of unpaid sale balances, maintained by the sales
// operations that create debt, take payments and process returns.
type Client struct {
	shared.BaseAggregateRoot
	Code               string
	Name               string
	Phone              string
	Email              string
	Address            string
	Notes              string
	Status             ClientStatus
	CreditLimitUSD     decimal.Decimal
	OutstandingDebtUSD decimal.Decimal
}

// NewClient creates a new client with required fields
func NewClient(code, name string) (*Client, error) {
	if err := validateClientCode(code); err != nil {
		return nil, err
	}
	if err := validateClientName(name); err != nil {
		return nil, err
	}

	client := &Client{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Code:               strings.ToUpper(code),
		Name:               name,
		Status:             ClientStatusActive,
		CreditLimitUSD:     decimal.Zero,
		OutstandingDebtUSD: decimal.Zero,
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))
	return client, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, notes string) error {
	if err := validateClientName(name); err != nil {
		return err
	}

	c.Name = name
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the client's contact information
func (c *Client) SetContact(phone, email, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetCreditLimit sets the client's credit limit. Zero means unlimited.
func (c *Client) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimitUSD = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// HasCreditLimit returns true when a limit is enforced
func (c *Client) HasCreditLimit() bool {
	return c.CreditLimitUSD.GreaterThan(decimal.Zero)
}

// CheckCredit validates that a new sale's unpaid portion fits under the
// client's credit limit. Clients without a limit always pass.
func (c *Client) CheckCredit(unpaidUSD decimal.Decimal) error {
	if !c.HasCreditLimit() {
		return nil
	}
	if unpaidUSD.GreaterThan(c.CreditLimitUSD) {
		return shared.ErrCreditLimitExceeded
	}
	return nil
}

// IncreaseDebt adds an unpaid sale balance to the rolling debt.
func (c *Client) IncreaseDebt(amountUSD decimal.Decimal) error {
	if amountUSD.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	old := c.OutstandingDebtUSD
	c.OutstandingDebtUSD = c.OutstandingDebtUSD.Add(amountUSD)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewClientDebtChangedEvent(c, old, c.OutstandingDebtUSD))
	return nil
}

// ReduceDebt settles part of the rolling debt after a payment or
// return. The balance is floored at zero to absorb rounding.
func (c *Client) ReduceDebt(amountUSD decimal.Decimal) error {
	if amountUSD.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	old := c.OutstandingDebtUSD
	c.OutstandingDebtUSD = c.OutstandingDebtUSD.Sub(amountUSD)
	if c.OutstandingDebtUSD.IsNegative() {
		c.OutstandingDebtUSD = decimal.Zero
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewClientDebtChangedEvent(c, old, c.OutstandingDebtUSD))
	return nil
}

// HasDebt returns true when any sale balance is still unpaid
func (c *Client) HasDebt() bool {
	return c.OutstandingDebtUSD.GreaterThan(decimal.Zero)
}

// Activate activates the client
func (c *Client) Activate() error {
	if c.Status == ClientStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Client is already active")
	}

	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate deactivates the client. Clients with outstanding debt
// stay active until settled.
func (c *Client) Deactivate() error {
	if c.Status == ClientStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Client is already inactive")
	}
	if c.HasDebt() {
		return shared.NewDomainError("CLIENT_HAS_DEBT", "Client with outstanding debt cannot be deactivated")
	}

	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// Validation functions

func validateClientCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Client code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Client code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Client code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateClientName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
