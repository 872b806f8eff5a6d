package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public, read-only parking surface.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/parking")
	{
		group.GET("/lots", h.List)
		group.GET("/lots/:lotId/slots", h.Slots)
	}
}

// RegisterAdminRoutes mounts the structural CRUD under the admin group,
// which already carries auth + admin middleware.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/lots", h.List)
	g.POST("/lots", h.Create)
	g.PUT("/lots/:lotId", h.Update)
	g.DELETE("/lots/:lotId", h.Delete)

	g.POST("/lots/:lotId/slots", h.AddSlot)
	g.PUT("/lots/:lotId/slots/:slotId", h.UpdateSlot)
	g.DELETE("/lots/:lotId/slots/:slotId", h.DeleteSlot)
}
