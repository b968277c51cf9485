package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/service"
)

type RoutineHandler struct {
	routineService *service.RoutineService
}

type generatePlanRequest struct {
	FreeMinutes int `json:"freeMinutes" binding:"required"`
}

func NewRoutineHandler(routineService *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

func (h *RoutineHandler) Generate(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	plan, apiErr := h.routineService.Generate(c.Request.Context(), email, req.FreeMinutes)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *RoutineHandler) Plan(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	plan, apiErr := h.routineService.Plan(c.Request.Context(), email)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *RoutineHandler) Clear(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	if apiErr := h.routineService.Clear(c.Request.Context(), email); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (h *RoutineHandler) ToggleDay(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_day", "day must be a number"))
		return
	}

	days, apiErr := h.routineService.ToggleDay(c.Request.Context(), email, day)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completedDays": days})
}
