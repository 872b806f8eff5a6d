package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/booking"
	"parkspot-backend/internal/pkg/response"
	"parkspot-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// isAdmin resolves the caller's admin flag from the document rather than
// trusting the token claim.
func (h *Handler) isAdmin(c *gin.Context) bool {
	u, err := h.userService.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return false
	}
	return u.IsAdmin
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.ReserveRequest{
		UserID: auth.GetUserID(c),
		LotID:  body.LotID,
		SlotID: body.SlotID,
		Date:   body.Date,
		Time:   body.Time,
	}

	b, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Booking successful", "booking": NewBookingResponse(b)})
}

// ListByUser returns a user's bookings. Callers may only read their own
// history unless they are an admin.
func (h *Handler) ListByUser(c *gin.Context) {
	targetUserID := c.Param("userId")
	if targetUserID != auth.GetUserID(c) && !h.isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	bookings, err := h.service.ListByUser(c.Request.Context(), targetUserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

func (h *Handler) Cancel(c *gin.Context) {
	identity := auth.GetIdentity(c)

	b, err := h.service.Cancel(c.Request.Context(), c.Param("bookingId"), identity.UserID, h.isAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Booking cancelled", "booking": NewBookingResponse(b)})
}

func (h *Handler) ListAll(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}
