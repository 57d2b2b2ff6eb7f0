package api

import (
	"net/http"

	"github.com/Domenick1991/flightgateway/internal/service/privilege"
	"github.com/gin-gonic/gin"
)

type PrivilegeHandler struct {
	service privilege.PrivilegeUseCase
}

func NewPrivilegeHandler(service privilege.PrivilegeUseCase) *PrivilegeHandler {
	return &PrivilegeHandler{service: service}
}

func (h *PrivilegeHandler) Register(router *gin.RouterGroup) {
	router.GET("/privilege", h.get)
	router.GET("/me", h.me)
}

func (h *PrivilegeHandler) get(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}

	balance, err := h.service.Get(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *PrivilegeHandler) me(c *gin.Context) {
	user, ok := username(c)
	if !ok {
		return
	}

	view, err := h.service.Me(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
