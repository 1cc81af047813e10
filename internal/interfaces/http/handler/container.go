package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	containerapp "github.com/importdesk/backend/internal/application/container"
	appshared "github.com/importdesk/backend/internal/application/shared"
)

// ContainerHandler handles container lifecycle, cost and settlement
// API endpoints
type ContainerHandler struct {
	BaseHandler
	containers  *containerapp.Service
	expenses    *containerapp.ExpenseService
	settlements *containerapp.SettlementService
}

// NewContainerHandler creates a new ContainerHandler
func NewContainerHandler(
	containers *containerapp.Service,
	expenses *containerapp.ExpenseService,
	settlements *containerapp.SettlementService,
) *ContainerHandler {
	return &ContainerHandler{
		containers:  containers,
		expenses:    expenses,
		settlements: settlements,
	}
}

func (h *ContainerHandler) containerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid container ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ContainerHandler) actor(c *gin.Context) (appshared.Actor, bool) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return appshared.Actor{}, false
	}
	return actor, true
}

// Create registers a new container
func (h *ContainerHandler) Create(c *gin.Context) {
	var req containerapp.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, container)
}

// GetByID returns one container with items, expenses, investments and
// payouts
func (h *ContainerHandler) GetByID(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	container, err := h.containers.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// List returns containers
func (h *ContainerHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	containers, err := h.containers.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, containers)
}

// MarkArrived transitions the container to ARRIVED
func (h *ContainerHandler) MarkArrived(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.MarkArrived(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// Close transitions the container to CLOSED
func (h *ContainerHandler) Close(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.Close(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// SetPurchase records the aggregate purchase figure in CNY with its
// exchange rate
func (h *ContainerHandler) SetPurchase(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.SetPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.SetPurchase(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// AddItem registers stock for a product on the container
func (h *ContainerHandler) AddItem(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.AddItem(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// AddManualStock increments an existing stock line
func (h *ContainerHandler) AddManualStock(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.AddManualStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.containers.AddManualStock(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// AddExpense books a cost entry against the container
func (h *ContainerHandler) AddExpense(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.expenses.AddExpense(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, container)
}

// AddCorrection books a signed adjustment against an expense
func (h *ContainerHandler) AddCorrection(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req containerapp.AddCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.expenses.AddCorrection(c.Request.Context(), id, expenseID, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, container)
}

// ConfirmCorrection applies a pending correction to the expense total
func (h *ContainerHandler) ConfirmCorrection(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	correctionID, err := uuid.Parse(c.Param("correctionId"))
	if err != nil {
		h.BadRequest(c, "Invalid correction ID format")
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.expenses.ConfirmCorrection(c.Request.Context(), id, correctionID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, container)
}

// AddInvestment records a capital contribution
func (h *ContainerHandler) AddInvestment(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.settlements.AddInvestment(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, container)
}

// Payables returns each investor's settlement position on the container
func (h *ContainerHandler) Payables(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	payables, err := h.settlements.Payables(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payables)
}

// RecordPayout settles capital back to an investor
func (h *ContainerHandler) RecordPayout(c *gin.Context) {
	id, ok := h.containerID(c)
	if !ok {
		return
	}

	var req containerapp.RecordPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	container, err := h.settlements.RecordPayout(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, container)
}
