package http

import (
	"github.com/gin-gonic/gin"

	bookingHttp "parkspot-backend/internal/booking/http"
)

// RegisterRoutes mounts the dashboard and booking overrides under the admin
// group, which already carries auth + admin middleware.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, bookingHandler *bookingHttp.Handler) {
	g.GET("/stats", h.Stats)

	g.GET("/bookings", bookingHandler.ListAll)
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.POST("/bookings/:id/complete", h.CompleteBooking)
}
