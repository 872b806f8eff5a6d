package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/pkg/apperror"
	"parkspot-backend/internal/pkg/response"
	"parkspot-backend/internal/user"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

// GetProfile returns the caller's profile. An authenticated identity with
// no record yet gets a placeholder; the record is created on first update.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := auth.GetUserID(c)

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			c.JSON(http.StatusOK, UserResponse{ID: userID, Name: "User"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var body UpdateProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), auth.GetUserID(c), body.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profile updated", "user": NewUserResponse(u)})
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = NewUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	var body AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.AdminUpdate(c.Request.Context(), c.Param("id"), body.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message("User deleted"))
}
