package routes

import (
	"nigraan/internal/controllers"
	"nigraan/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterMonitorRoutes wires the read-only dashboard endpoints
func RegisterMonitorRoutes(r *gin.Engine, board *services.DisplayBoard, hub *services.WebSocketHub) {
	r.GET("/healthz", controllers.Healthz(board))
	r.GET("/state", controllers.GetState(board))
	r.GET("/ws", controllers.HandleWebSocket(hub))

	metrics := r.Group("/metrics")
	{
		metrics.GET("/cpu", controllers.GetCPU(board))
		metrics.GET("/memory", controllers.GetMemory(board))
		metrics.GET("/disks", controllers.GetDisks(board))
		metrics.GET("/network", controllers.GetNetwork(board))
	}
}
