package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/strike-cal/app/tasks"
)

func NewHandler(outputPath, regionName, version string, status StatusInterface,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		outputPath: outputPath,
		regionName: regionName,
		version:    version,
		status:     status,
		scheduler:  scheduler,
	}
}

// GetCalendar serves the last calendar written to disk.
func (h *Handler) GetCalendar(c *gin.Context) {
	if !h.status.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Calendar has not been built yet"})
		return
	}

	data, err := os.ReadFile(h.outputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Calendar has not been built yet"})
			return
		}
		slog.Error("Failed to read calendar", "path", h.outputPath, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	snapshot := h.status.Snapshot()

	c.Header("X-Calendar-Events", strconv.Itoa(snapshot.Events))
	if snapshot.LastSuccessAt != nil {
		c.Header("X-Last-Updated", snapshot.LastSuccessAt.UTC().Format(time.RFC3339))
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"ready":     h.status.Ready(),
		"build":     h.status.Snapshot(),
	})
}

func (h *Handler) APIRebuild(c *gin.Context) {
	if err := h.scheduler.RequestBuild(); err != nil {
		slog.Error("Error enqueueing rebuild task", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue rebuild task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Calendar rebuild enqueued",
	})
}
