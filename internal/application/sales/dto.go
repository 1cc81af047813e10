package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/sales"
)

// SaleLineRequest is one line of a new sale. When UnitPriceUSD is nil
// the product's sale price override on the container is used.
type SaleLineRequest struct {
	ContainerID  uuid.UUID        `json:"container_id" binding:"required"`
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPriceUSD *decimal.Decimal `json:"unit_price_usd,omitempty"`
}

// CreateSaleRequest registers a sale in one shot: lines plus the amount
// paid at the counter.
type CreateSaleRequest struct {
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	Mode       string            `json:"mode" binding:"required"`
	SoldAt     *time.Time        `json:"sold_at,omitempty"`
	DueDate    *time.Time        `json:"due_date,omitempty"`
	PaidNowUSD decimal.Decimal   `json:"paid_now_usd"`
	Lines      []SaleLineRequest `json:"lines" binding:"required"`
}

// AddPaymentRequest settles debt against a sale. Amounts beyond the
// open debt are capped.
type AddPaymentRequest struct {
	AmountUSD decimal.Decimal `json:"amount_usd" binding:"required"`
	Method    string          `json:"method"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

// ReturnLineRequest returns part of one sale line
type ReturnLineRequest struct {
	SaleItemID uuid.UUID       `json:"sale_item_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateReturnRequest takes goods back against a sale
type CreateReturnRequest struct {
	Lines []ReturnLineRequest `json:"lines" binding:"required"`
}

// ExchangeLineRequest is one replacement line of an exchange
type ExchangeLineRequest struct {
	ContainerID  uuid.UUID        `json:"container_id" binding:"required"`
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPriceUSD *decimal.Decimal `json:"unit_price_usd,omitempty"`
}

// CreateExchangeRequest swaps returned goods for replacements in one
// atomic operation.
type CreateExchangeRequest struct {
	ReturnLines []ReturnLineRequest   `json:"return_lines" binding:"required"`
	AddLines    []ExchangeLineRequest `json:"add_lines" binding:"required"`
}

// SaleItemResponse is the API view of a sale line
type SaleItemResponse struct {
	ID                  uuid.UUID       `json:"id"`
	ContainerID         uuid.UUID       `json:"container_id"`
	ProductID           uuid.UUID       `json:"product_id"`
	ProductName         string          `json:"product_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	ReturnedQuantity    decimal.Decimal `json:"returned_quantity"`
	CostPerUnitUSD      decimal.Decimal `json:"cost_per_unit_usd"`
	SalePricePerUnitUSD decimal.Decimal `json:"sale_price_per_unit_usd"`
	NetAmountUSD        decimal.Decimal `json:"net_amount_usd"`
}

// PaymentResponse is the API view of a payment record
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
	Method    string          `json:"method"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ReturnItemResponse is the API view of one returned line
type ReturnItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
}

// ReturnResponse is the API view of a return operation
type ReturnResponse struct {
	ID       uuid.UUID            `json:"id"`
	Number   string               `json:"number"`
	TotalUSD decimal.Decimal      `json:"total_usd"`
	Items    []ReturnItemResponse `json:"items"`
}

// SaleResponse is the API view of a sale with children
type SaleResponse struct {
	ID                uuid.UUID          `json:"id"`
	Number            string             `json:"number"`
	ClientID          uuid.UUID          `json:"client_id"`
	ClientName        string             `json:"client_name"`
	Mode              string             `json:"mode"`
	Status            string             `json:"status"`
	PeriodID          uuid.UUID          `json:"period_id"`
	SoldAt            time.Time          `json:"sold_at"`
	DueDate           *time.Time         `json:"due_date,omitempty"`
	TotalAmountUSD    decimal.Decimal    `json:"total_amount_usd"`
	PaidAmountUSD     decimal.Decimal    `json:"paid_amount_usd"`
	DebtAmountUSD     decimal.Decimal    `json:"debt_amount_usd"`
	RealizedMarginUSD decimal.Decimal    `json:"realized_margin_usd"`
	Items             []SaleItemResponse `json:"items"`
	Payments          []PaymentResponse  `json:"payments"`
	Returns           []ReturnResponse   `json:"returns"`
}

// ToSaleResponse maps a sale aggregate to its API view
func ToSaleResponse(s *sales.Sale) SaleResponse {
	resp := SaleResponse{
		ID:                s.ID,
		Number:            s.Number,
		ClientID:          s.ClientID,
		ClientName:        s.ClientName,
		Mode:              string(s.Mode),
		Status:            s.Status.String(),
		PeriodID:          s.PeriodID,
		SoldAt:            s.SoldAt,
		DueDate:           s.DueDate,
		TotalAmountUSD:    s.TotalAmountUSD,
		PaidAmountUSD:     s.PaidAmountUSD,
		DebtAmountUSD:     s.DebtAmountUSD,
		RealizedMarginUSD: s.RealizedMargin(),
		Items:             make([]SaleItemResponse, 0, len(s.Items)),
		Payments:          make([]PaymentResponse, 0, len(s.Payments)),
		Returns:           make([]ReturnResponse, 0, len(s.Returns)),
	}
	for i := range s.Items {
		item := &s.Items[i]
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:                  item.ID,
			ContainerID:         item.ContainerID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			ReturnedQuantity:    item.ReturnedQuantity,
			CostPerUnitUSD:      item.CostPerUnitUSD,
			SalePricePerUnitUSD: item.SalePricePerUnitUSD,
			NetAmountUSD:        item.NetAmount(),
		})
	}
	for i := range s.Payments {
		p := &s.Payments[i]
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:        p.ID,
			AmountUSD: p.AmountUSD,
			Method:    p.Method,
			PaidAt:    p.PaidAt,
		})
	}
	for i := range s.Returns {
		resp.Returns = append(resp.Returns, toReturnResponse(&s.Returns[i]))
	}
	return resp
}

func toReturnResponse(ret *sales.SaleReturn) ReturnResponse {
	out := ReturnResponse{
		ID:       ret.ID,
		Number:   ret.Number,
		TotalUSD: ret.TotalUSD,
		Items:    make([]ReturnItemResponse, 0, len(ret.Items)),
	}
	for i := range ret.Items {
		item := &ret.Items[i]
		out.Items = append(out.Items, ReturnItemResponse{
			ID:         item.ID,
			SaleItemID: item.SaleItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			AmountUSD:  item.AmountUSD,
		})
	}
	return out
}
