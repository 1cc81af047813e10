package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/inventory"
)

// CountLineRequest is the counted quantity for one product in one
// container
type CountLineRequest struct {
	ContainerID    uuid.UUID       `json:"container_id" binding:"required"`
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// SubmitCountRequest submits a full count session
type SubmitCountRequest struct {
	Lines []CountLineRequest `json:"lines" binding:"required"`
}

// ConfirmCountRequest redeems a session's confirmation code
type ConfirmCountRequest struct {
	Code string `json:"code" binding:"required"`
}

// SessionItemResponse is the API view of one counted line
type SessionItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ContainerID    uuid.UUID       `json:"container_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	SystemQuantity decimal.Decimal `json:"system_quantity"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	Difference     decimal.Decimal `json:"difference"`
}

// SessionResponse is the API view of a count session. The confirmation
// code only appears on clean, still-pending sessions.
type SessionResponse struct {
	ID              uuid.UUID             `json:"id"`
	Status          string                `json:"status"`
	Code            *string               `json:"code,omitempty"`
	CountedBy       uuid.UUID             `json:"counted_by"`
	CountedAt       time.Time             `json:"counted_at"`
	ConfirmedBy     *uuid.UUID            `json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time            `json:"confirmed_at,omitempty"`
	DifferenceCount int                   `json:"difference_count"`
	Items           []SessionItemResponse `json:"items"`
}

// ToSessionResponse maps a count session to its API view
func ToSessionResponse(s *inventory.CountSession) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID,
		Status:          s.Status.String(),
		Code:            s.Code,
		CountedBy:       s.CountedBy,
		CountedAt:       s.CountedAt,
		ConfirmedBy:     s.ConfirmedBy,
		ConfirmedAt:     s.ConfirmedAt,
		DifferenceCount: s.DifferenceCount(),
		Items:           make([]SessionItemResponse, 0, len(s.Items)),
	}
	for i := range s.Items {
		item := &s.Items[i]
		resp.Items = append(resp.Items, SessionItemResponse{
			ID:             item.ID,
			ContainerID:    item.ContainerID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Difference:     item.Difference,
		})
	}
	return resp
}
