package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/importdesk/backend/internal/application/sales"
)

// SalesHandler handles sale, payment, return and exchange API endpoints
type SalesHandler struct {
	BaseHandler
	sales *salesapp.Service
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(sales *salesapp.Service) *SalesHandler {
	return &SalesHandler{sales: sales}
}

func (h *SalesHandler) saleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Create registers a sale: decrements stock, books debt and any
// counter payment in one transaction
func (h *SalesHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sale, err := h.sales.CreateSale(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID returns one sale with items, payments and returns
func (h *SalesHandler) GetByID(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List returns sales, newest first
func (h *SalesHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "status", "mode", "period_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// ListByClient returns one client's sales
func (h *SalesHandler) ListByClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	filter, err := bindListFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, err := h.sales.ListByClient(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// AddPayment settles debt against the sale
func (h *SalesHandler) AddPayment(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sale, err := h.sales.AddPayment(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// CreateReturn takes goods back against the sale and restocks them
func (h *SalesHandler) CreateReturn(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sale, err := h.sales.CreateReturn(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// CreateExchange swaps returned goods for replacement lines atomically
func (h *SalesHandler) CreateExchange(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}

	var req salesapp.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	sale, err := h.sales.CreateExchange(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}
