package controllers

import (
	"net/http"

	"nigraan/internal/services"

	"github.com/gin-gonic/gin"
)

// GetState serves the full display state from the last published tick
func GetState(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := board.State()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no sample published yet"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// GetCPU serves the raw CPU snapshot from the last published tick
func GetCPU(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, ok := board.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no sample published yet"})
			return
		}
		c.JSON(http.StatusOK, snapshot.CPU)
	}
}

// GetMemory serves the raw memory snapshot from the last published tick
func GetMemory(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, ok := board.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no sample published yet"})
			return
		}
		c.JSON(http.StatusOK, snapshot.Memory)
	}
}

// GetDisks serves the drive registry entries from the last published tick
func GetDisks(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, ok := board.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no sample published yet"})
			return
		}
		c.JSON(http.StatusOK, snapshot.Drives)
	}
}

// GetNetwork serves the derived network rates and cumulative counters
func GetNetwork(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, ok := board.Snapshot()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no sample published yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"rate":       snapshot.Network,
			"counters":   snapshot.Counters,
			"latency_ms": snapshot.LatencyMs,
		})
	}
}

// Healthz reports liveness and whether a first sample has been published
func Healthz(board *services.DisplayBoard) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, ok := board.State()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sampled": ok})
	}
}
