package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/user/:userId", h.ListByUser)
		group.DELETE("/:bookingId", h.Cancel)

		group.GET("/all", adminMiddleware, h.ListAll)
	}
}
