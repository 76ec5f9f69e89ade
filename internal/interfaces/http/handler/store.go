package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppartner "github.com/tiendapro/backend/internal/application/partner"
	"github.com/tiendapro/backend/internal/interfaces/http/dto"
)

// StoreHandler handles store endpoints
type StoreHandler struct {
	BaseHandler
	stores *apppartner.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(stores *apppartner.StoreService) *StoreHandler {
	return &StoreHandler{stores: stores}
}

// RegisterRoutes mounts store routes under /stores
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores")
	stores.POST("", h.Create)
	stores.GET("", h.List)
	stores.GET("/:id", h.Get)
	stores.PUT("/:id", h.Update)
	stores.DELETE("/:id", h.Delete)
}

type listStoresQuery struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// Create registers a store
func (h *StoreHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req apppartner.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if creatorID, err := getUserID(c); err == nil {
		req.CreatedBy = &creatorID
	}

	store, err := h.stores.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, store)
}

// Get returns a single store
func (h *StoreHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.stores.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, store)
}

// List returns stores with optional status and search filters
func (h *StoreHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var query listStoresQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	query.Normalize()

	filter := apppartner.StoreListFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	stores, total, err := h.stores.List(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, stores, total, query.Page, query.PageSize)
}

// Update changes a store's details or status
func (h *StoreHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req apppartner.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	store, err := h.stores.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, store)
}

// Delete removes a store
func (h *StoreHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	if err := h.stores.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
