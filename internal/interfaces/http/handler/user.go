package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/tiendapro/backend/internal/application/identity"
	"github.com/tiendapro/backend/internal/interfaces/http/dto"
	"github.com/tiendapro/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	users *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *appidentity.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes mounts user routes under /users. Mutations require the
// admin role.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("", h.List)
	users.GET("/:id", h.Get)

	admin := users.Group("", middleware.RequireRole("admin"))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// listUsersQuery carries user list query parameters
type listUsersQuery struct {
	dto.ListRequest
	Role   string `form:"role" binding:"omitempty,oneof=admin staff"`
	Status string `form:"status" binding:"omitempty,oneof=active disabled"`
}

// Create adds a user to the caller's organization
func (h *UserHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if creatorID, err := getUserID(c); err == nil {
		req.CreatedBy = &creatorID
	}

	user, err := h.users.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.users.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// List returns the organization's users with optional role/status filters
func (h *UserHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	query.Normalize()

	filter := appidentity.UserListFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Role != "" {
		filter.Role = &query.Role
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	users, total, err := h.users.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, query.Page, query.PageSize)
}

// Update changes a user's profile, role, status or password
func (h *UserHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req appidentity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes a user
func (h *UserHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.users.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
