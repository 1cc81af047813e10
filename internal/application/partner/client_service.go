package partner

import (
	"context"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/shared"
)

// ClientService manages the client registry. Debt balances are owned
// by the sales operations; this service only handles the card itself.
type ClientService struct {
	scope appshared.TransactionScope
}

// NewClientService creates a new ClientService
func NewClientService(scope appshared.TransactionScope) *ClientService {
	return &ClientService{scope: scope}
}

// Create registers a client with a unique code
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest, actor appshared.Actor) (*ClientResponse, error) {
	var resp ClientResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if existing, err := repos.Clients().FindByCode(ctx, req.Code); err == nil && existing != nil {
			return shared.NewDomainError("DUPLICATE_CODE", "Client code already in use")
		}

		client, err := partner.NewClient(req.Code, req.Name)
		if err != nil {
			return err
		}
		if err := client.SetContact(req.Phone, req.Email, req.Address); err != nil {
			return err
		}
		client.Notes = req.Notes

		if err := repos.Clients().Save(ctx, client); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"client.create", partner.AggregateTypeClient, client.ID, actor.UserID,
			map[string]any{"code": client.Code},
		)); err != nil {
			return err
		}
		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one client
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	var resp ClientResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		client, err := repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns clients matching the filter
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	var out []ClientResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		clients, err := repos.Clients().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]ClientResponse, 0, len(clients))
		for i := range clients {
			out = append(out, ToClientResponse(&clients[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the client's card
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest, actor appshared.Actor) (*ClientResponse, error) {
	return s.mutate(ctx, id, "client.update", actor, func(client *partner.Client) error {
		if err := client.Update(req.Name, req.Notes); err != nil {
			return err
		}
		return client.SetContact(req.Phone, req.Email, req.Address)
	})
}

// SetCreditLimit sets the ceiling checked when a sale defers payment
func (s *ClientService) SetCreditLimit(ctx context.Context, id uuid.UUID, req SetCreditLimitRequest, actor appshared.Actor) (*ClientResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}
	return s.mutate(ctx, id, "client.set_credit_limit", actor, func(client *partner.Client) error {
		return client.SetCreditLimit(req.CreditLimitUSD)
	})
}

// Activate reopens a deactivated client
func (s *ClientService) Activate(ctx context.Context, id uuid.UUID, actor appshared.Actor) (*ClientResponse, error) {
	return s.mutate(ctx, id, "client.activate", actor, func(client *partner.Client) error {
		return client.Activate()
	})
}

// Deactivate retires a client; blocked while debt is outstanding
func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID, actor appshared.Actor) (*ClientResponse, error) {
	return s.mutate(ctx, id, "client.deactivate", actor, func(client *partner.Client) error {
		return client.Deactivate()
	})
}

// Debtors lists active clients carrying outstanding debt
func (s *ClientService) Debtors(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	var out []ClientResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		clients, err := repos.Clients().FindDebtors(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]ClientResponse, 0, len(clients))
		for i := range clients {
			out = append(out, ToClientResponse(&clients[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ClientService) mutate(ctx context.Context, id uuid.UUID, action string, actor appshared.Actor, fn func(client *partner.Client) error) (*ClientResponse, error) {
	var resp ClientResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		client, err := repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(client); err != nil {
			return err
		}
		if err := repos.Clients().SaveWithLock(ctx, client); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			action, partner.AggregateTypeClient, client.ID, actor.UserID,
			map[string]any{"code": client.Code},
		)); err != nil {
			return err
		}
		resp = ToClientResponse(client)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
