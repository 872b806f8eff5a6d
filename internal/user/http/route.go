package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/users")
	group.Use(authMiddleware)
	{
		group.GET("/profile", h.GetProfile)
		group.PUT("/profile", h.UpdateProfile)

		group.GET("/all", adminMiddleware, h.List)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}

// RegisterAdminRoutes mounts the user management surface under the admin
// group, which already carries auth + admin middleware.
func RegisterAdminRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/users", h.List)
	g.PUT("/users/:id", h.AdminUpdate)
	g.DELETE("/users/:id", h.Delete)
}
