package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/middleware"
	"wellspace/backend/internal/service"
)

type FocusHandler struct {
	focusService *service.FocusService
}

func NewFocusHandler(focusService *service.FocusService) *FocusHandler {
	return &FocusHandler{focusService: focusService}
}

func (h *FocusHandler) State(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.focusService.State(email)})
}

func (h *FocusHandler) Start(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.focusService.Start(email)})
}

func (h *FocusHandler) Pause(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.focusService.Pause(email)})
}

func (h *FocusHandler) Reset(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"timer": h.focusService.Reset(email)})
}

func requireUser(c *gin.Context) (string, bool) {
	email := middleware.UserEmail(c)
	if email == "" {
		writeError(c, apperrors.Unauthorized(""))
		return "", false
	}
	return email, true
}
