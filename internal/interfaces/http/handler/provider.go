package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppartner "github.com/tiendapro/backend/internal/application/partner"
	"github.com/tiendapro/backend/internal/interfaces/http/dto"
)

// ProviderHandler handles provider endpoints
type ProviderHandler struct {
	BaseHandler
	providers *apppartner.ProviderService
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(providers *apppartner.ProviderService) *ProviderHandler {
	return &ProviderHandler{providers: providers}
}

// RegisterRoutes mounts provider routes under /providers
func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	providers := rg.Group("/providers")
	providers.POST("", h.Create)
	providers.GET("", h.List)
	providers.GET("/:id", h.Get)
	providers.PUT("/:id", h.Update)
	providers.DELETE("/:id", h.Delete)
}

// listProvidersQuery carries provider list query parameters
type listProvidersQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// Create registers a provider
func (h *ProviderHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req apppartner.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if creatorID, err := getUserID(c); err == nil {
		req.CreatedBy = &creatorID
	}

	provider, err := h.providers.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, provider)
}

// Get returns a single provider
func (h *ProviderHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid provider ID")
		return
	}

	provider, err := h.providers.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, provider)
}

// List returns providers with optional status and search filters
func (h *ProviderHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var query listProvidersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	query.Normalize()

	filter := apppartner.ProviderListFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	providers, total, err := h.providers.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, providers, total, query.Page, query.PageSize)
}

// Update changes a provider's details or status
func (h *ProviderHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid provider ID")
		return
	}

	var req apppartner.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	provider, err := h.providers.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, provider)
}

// Delete removes a provider. Providers referenced by purchases cannot
// be deleted and return a 422.
func (h *ProviderHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid provider ID")
		return
	}

	if err := h.providers.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
