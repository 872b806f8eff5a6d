package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/admin"
	bookingHttp "parkspot-backend/internal/booking/http"
	"parkspot-backend/internal/pkg/response"
)

type Handler struct {
	service admin.Service
}

func NewHandler(service admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Booking cancelled successfully", "booking": bookingHttp.NewBookingResponse(b)})
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	b, err := h.service.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Booking completed", "booking": bookingHttp.NewBookingResponse(b)})
}
