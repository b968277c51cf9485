package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wellspace/backend/internal/catalog"
	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

type recordStepsRequest struct {
	Total *int `json:"total" binding:"required"`
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) Steps(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	view, apiErr := h.progressService.Steps(c.Request.Context(), email)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": view})
}

func (h *ProgressHandler) RecordSteps(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	var req recordStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	view, apiErr := h.progressService.RecordSteps(c.Request.Context(), email, *req.Total)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": view})
}

func (h *ProgressHandler) Workouts(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	completed, apiErr := h.progressService.CompletedWorkouts(c.Request.Context(), email)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"workouts":  catalog.Workouts(c.Query("category")),
		"completed": completed,
	})
}

func (h *ProgressHandler) ToggleWorkout(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_workout_id", "workout id must be a number"))
		return
	}

	completed, apiErr := h.progressService.ToggleWorkout(c.Request.Context(), email, id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

func (h *ProgressHandler) Sounds(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"sounds": catalog.SleepSounds()})
}

func (h *ProgressHandler) PlaySound(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, apperrors.BadRequest("invalid_sound_id", "sound id must be a number"))
		return
	}

	result, apiErr := h.progressService.PlaySound(c.Request.Context(), email, id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProgressHandler) Dashboard(c *gin.Context) {
	email, ok := requireUser(c)
	if !ok {
		return
	}

	view, apiErr := h.progressService.Dashboard(c.Request.Context(), email)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": view})
}
