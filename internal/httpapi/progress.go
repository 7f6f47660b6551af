package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lectern/internal/llm"
	"github.com/abhisek/lectern/internal/logger"
	"github.com/abhisek/lectern/internal/roadmap"
)

type PerformanceHandler struct {
	log        *logger.Logger
	dashboards Dashboards
}

func NewPerformanceHandler(log *logger.Logger, dashboards Dashboards) *PerformanceHandler {
	return &PerformanceHandler{
		log:        log.With("handler", "PerformanceHandler"),
		dashboards: dashboards,
	}
}

// GET /performance/:user?topic=...
func (h *PerformanceHandler) Dashboard(c *gin.Context) {
	user := c.Param("user")
	d, err := h.dashboards.Dashboard(c.Request.Context(), user, c.Query("topic"))
	if err != nil {
		h.log.Error("load dashboard failed", "user", user, "error", err)
		RespondError(c, http.StatusInternalServerError, "performance_error", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "dashboard": d})
}

type RoadmapHandler struct {
	log      *logger.Logger
	roadmaps Roadmaps
}

func NewRoadmapHandler(log *logger.Logger, roadmaps Roadmaps) *RoadmapHandler {
	return &RoadmapHandler{
		log:      log.With("handler", "RoadmapHandler"),
		roadmaps: roadmaps,
	}
}

type roadmapRequest struct {
	Skill string `json:"skill" binding:"required"`
}

// POST /roadmap
func (h *RoadmapHandler) Generate(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	r, err := h.roadmaps.Generate(c.Request.Context(), strings.TrimSpace(req.Skill))
	if errors.Is(err, roadmap.ErrEmptySkill) {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if llm.Unavailable(err) {
		h.log.Warn("roadmap model unavailable", "skill", req.Skill, "error", err)
		RespondError(c, http.StatusServiceUnavailable, "model_unavailable", err)
		return
	}
	if err != nil {
		h.log.Error("generate roadmap failed", "skill", req.Skill, "error", err)
		RespondError(c, http.StatusBadGateway, "generation_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "roadmap": r})
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
