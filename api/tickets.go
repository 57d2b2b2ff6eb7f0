package api

import (
	"net/http"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/Domenick1991/flightgateway/internal/service/tickets"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

type purchaseRequest struct {
	FlightNumber    string `json:"flightNumber" binding:"required"`
	Price           int    `json:"price"`
	PaidFromBalance bool   `json:"paidFromBalance"`
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	group := router.Group("/tickets")
	group.GET("", h.list)
	group.POST("", h.purchase)
	group.GET("/:id", h.get)
	group.DELETE("/:id", h.cancel)
}

func (h *TicketHandler) list(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}

	views, err := h.service.List(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *TicketHandler) get(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}
	ticketUID, ok := ticketID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(c.Request.Context(), user, ticketUID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TicketHandler) purchase(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	result, err := h.service.Purchase(c.Request.Context(), user, domain.PurchaseInput{
		FlightNumber:    req.FlightNumber,
		Price:           req.Price,
		PaidFromBalance: req.PaidFromBalance,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TicketHandler) cancel(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}
	ticketUID, ok := ticketID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), user, ticketUID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// ticketID rejects paths that are not ticket UUIDs as unknown routes.
func ticketID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return "", false
	}
	return id.String(), true
}
