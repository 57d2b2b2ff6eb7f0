package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightgateway/config"
	"github.com/Domenick1991/flightgateway/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	paging  config.PagingConfig
}

func NewFlightHandler(service flights.FlightUseCase, paging config.PagingConfig) *FlightHandler {
	return &FlightHandler{service: service, paging: paging}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.list)
}

func (h *FlightHandler) list(c *gin.Context) {
	page, err := queryInt(c, "page", h.paging.DefaultPage)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	size, err := queryInt(c, "size", h.paging.DefaultSize)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	result, err := h.service.List(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var errNotPositive = errors.New("must be positive")

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%s %d: %w", key, n, errNotPositive)
	}
	return n, nil
}
