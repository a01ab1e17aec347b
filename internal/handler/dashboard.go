package handler

import (
	"errors"
	"net/http"
	"strconv"

	"elevateu/internal/middleware"
	"elevateu/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler interface {
	Profile(c *gin.Context)
	Dashboard(c *gin.Context)
	AddPoints(c *gin.Context)
	Leaderboard(c *gin.Context)
}

type dashboardHandler struct {
	dashboardService service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService service.DashboardService, logger *zap.Logger) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService, logger: logger}
}

// maxPointsPerAward bounds a single award so the running total cannot be
// pushed anywhere near integer overflow by a single request.
const maxPointsPerAward = 1_000_000

func (h *dashboardHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile fetched successfully",
		"user":    user,
	})
}

func (h *dashboardHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.dashboardService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dashboard stats not found"})
			return
		}
		h.logger.Error("Failed to fetch dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome " + user.Name + " to ElevateU Dashboard",
		"user":    user,
		"stats":   stats,
	})
}

func (h *dashboardHandler) AddPoints(c *gin.Context) {
	user := middleware.CurrentUser(c)

	points, err := strconv.ParseInt(c.Query("points"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must be an integer"})
		return
	}
	if points < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must not be negative"})
		return
	}
	if points > maxPointsPerAward {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points exceeds the maximum single award"})
		return
	}

	stats, err := h.dashboardService.AddPoints(c.Request.Context(), user.ID, points)
	if err != nil {
		if errors.Is(err, service.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dashboard stats not found"})
			return
		}
		h.logger.Error("Failed to add points", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Points added successfully",
		"new_stats": stats,
	})
}

func (h *dashboardHandler) Leaderboard(c *gin.Context) {
	entries, err := h.dashboardService.Leaderboard(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
