package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/importdesk/backend/internal/application/partner"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clients *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) clientID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return uuid.Nil, false
	}
	return id, true
}

// Create registers a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clients.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID returns one client
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// List returns clients
func (h *ClientHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// Debtors returns active clients carrying open debt, largest first
func (h *ClientHandler) Debtors(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debtors, err := h.clients.Debtors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debtors)
}

// Update rewrites the client's card
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// SetCreditLimit sets the client's credit ceiling; zero removes it
func (h *ClientHandler) SetCreditLimit(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	var req partnerapp.SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clients.SetCreditLimit(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Activate re-enables a deactivated client
func (h *ClientHandler) Activate(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clients.Activate(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Deactivate hides the client from new sales; history stays intact
func (h *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := h.clientID(c)
	if !ok {
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clients.Deactivate(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// InvestorHandler handles investor API endpoints
type InvestorHandler struct {
	BaseHandler
	investors *partnerapp.InvestorService
}

// NewInvestorHandler creates a new InvestorHandler
func NewInvestorHandler(investors *partnerapp.InvestorService) *InvestorHandler {
	return &InvestorHandler{investors: investors}
}

// Create registers an investor
func (h *InvestorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	investor, err := h.investors.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, investor)
}

// GetByID returns one investor
func (h *InvestorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	investor, err := h.investors.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investor)
}

// List returns investors
func (h *InvestorHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "active")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	investors, err := h.investors.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investors)
}

// Update rewrites the investor's card
func (h *InvestorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investor ID format")
		return
	}

	var req partnerapp.UpdateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	investor, err := h.investors.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investor)
}
