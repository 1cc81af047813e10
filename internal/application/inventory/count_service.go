package inventory

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/shared"
)

// codeAttempts bounds the search for an unused confirmation code
const codeAttempts = 10

// defaultCodeLength is the confirmation code length used when the
// configuration does not set one.
const defaultCodeLength = 6

// CountService handles inventory count sessions: submitting a counted
// snapshot against live stock and confirming clean sessions by code.
type CountService struct {
	scope      appshared.TransactionScope
	codeLength int
}

// NewCountService creates a new CountService issuing confirmation codes
// of the given length.
func NewCountService(scope appshared.TransactionScope, codeLength int) *CountService {
	if codeLength < 1 {
		codeLength = defaultCodeLength
	}
	return &CountService{scope: scope, codeLength: codeLength}
}

// Get returns one session with its lines
func (s *CountService) Get(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	var resp SessionResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		session, err := repos.Counts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns sessions matching the filter
func (s *CountService) List(ctx context.Context, filter shared.Filter) ([]SessionResponse, error) {
	var out []SessionResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		sessions, err := repos.Counts().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]SessionResponse, 0, len(sessions))
		for i := range sessions {
			out = append(out, ToSessionResponse(&sessions[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Submit snapshots a count against live stock. The system quantity of
// every line is read inside the transaction, so the comparison is
// consistent with concurrent sales. A clean count gets a confirmation
// code; any difference marks the session DISCREPANCY with no code.
func (s *CountService) Submit(ctx context.Context, req SubmitCountRequest, actor appshared.Actor) (*SessionResponse, error) {
	var resp SessionResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		containers := make(map[uuid.UUID]*container.Container)
		lines := make([]inventory.CountLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			c, ok := containers[l.ContainerID]
			if !ok {
				var err error
				c, err = repos.Containers().FindByID(ctx, l.ContainerID)
				if err != nil {
					return err
				}
				containers[l.ContainerID] = c
			}
			item := c.ItemByProduct(l.ProductID)
			if item == nil {
				return shared.NewDomainError("PRODUCT_NOT_IN_CONTAINER",
					"Container "+c.Number+" holds no stock record for the counted product")
			}
			lines = append(lines, inventory.CountLine{
				ContainerID:    c.ID,
				ProductID:      l.ProductID,
				ProductName:    item.ProductName,
				SystemQuantity: item.Quantity,
				ActualQuantity: l.ActualQuantity,
			})
		}

		session, err := inventory.NewCountSession(actor.UserID, lines)
		if err != nil {
			return err
		}
		if session.Status == inventory.SessionStatusPending {
			code, err := s.uniqueCode(ctx, repos)
			if err != nil {
				return err
			}
			if err := session.AssignCode(code); err != nil {
				return err
			}
		}

		if err := repos.Counts().Save(ctx, session); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"inventory.count_submit", inventory.AggregateTypeCountSession, session.ID, actor.UserID,
			map[string]any{"status": session.Status.String(), "lines": len(session.Items)},
		)); err != nil {
			return err
		}
		resp = ToSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm redeems a pending session's confirmation code. Requires a
// privileged actor; discrepancy sessions cannot be confirmed at all.
func (s *CountService) Confirm(ctx context.Context, sessionID uuid.UUID, req ConfirmCountRequest, actor appshared.Actor) (*SessionResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	var resp SessionResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		session, err := repos.Counts().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := session.Confirm(req.Code, actor.UserID); err != nil {
			return err
		}
		if err := repos.Counts().Save(ctx, session); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"inventory.count_confirm", inventory.AggregateTypeCountSession, session.ID, actor.UserID,
			nil,
		)); err != nil {
			return err
		}
		resp = ToSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resolve reopens a discrepancy session after the stock has been
// corrected outside the count. The session goes back to PENDING and a
// fresh confirmation code is issued. Privileged actors only.
func (s *CountService) Resolve(ctx context.Context, sessionID uuid.UUID, actor appshared.Actor) (*SessionResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	var resp SessionResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		session, err := repos.Counts().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := session.Resolve(); err != nil {
			return err
		}
		code, err := s.uniqueCode(ctx, repos)
		if err != nil {
			return err
		}
		if err := session.AssignCode(code); err != nil {
			return err
		}
		if err := repos.Counts().Save(ctx, session); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"inventory.count_resolve", inventory.AggregateTypeCountSession, session.ID, actor.UserID,
			nil,
		)); err != nil {
			return err
		}
		resp = ToSessionResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// uniqueCode draws a confirmation code of the configured length not
// held by any live session.
func (s *CountService) uniqueCode(ctx context.Context, repos appshared.TransactionalRepositories) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.codeLength)), nil)
	for i := 0; i < codeAttempts; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%0*d", s.codeLength, n.Int64())
		inUse, err := repos.Counts().CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", shared.NewDomainError("CODE_EXHAUSTED", "Could not allocate an unused confirmation code")
}
