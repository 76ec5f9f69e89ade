package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appprocurement "github.com/tiendapro/backend/internal/application/procurement"
	"github.com/tiendapro/backend/internal/interfaces/http/dto"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *appprocurement.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases *appprocurement.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// RegisterRoutes mounts purchase routes under /purchases
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	purchases.POST("", h.Create)
	purchases.GET("", h.List)
	purchases.GET("/:id", h.Get)
	purchases.PUT("/:id", h.Update)
	purchases.DELETE("/:id", h.Delete)
}

// listPurchasesQuery carries purchase list query parameters. Dates are
// inclusive day bounds in YYYY-MM-DD form.
type listPurchasesQuery struct {
	dto.ListRequest
	StoreID    string    `form:"store_id" binding:"omitempty,uuid"`
	ProviderID string    `form:"provider_id" binding:"omitempty,uuid"`
	Status     string    `form:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	From       time.Time `form:"from" time_format:"2006-01-02"`
	To         time.Time `form:"to" time_format:"2006-01-02"`
	DueFrom    time.Time `form:"due_from" time_format:"2006-01-02"`
	DueTo      time.Time `form:"due_to" time_format:"2006-01-02"`
}

func (q *listPurchasesQuery) toFilter() appprocurement.PurchaseListFilter {
	filter := appprocurement.PurchaseListFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.StoreID != "" {
		id := uuid.MustParse(q.StoreID)
		filter.StoreID = &id
	}
	if q.ProviderID != "" {
		id := uuid.MustParse(q.ProviderID)
		filter.ProviderID = &id
	}
	if q.Status != "" {
		filter.Status = &q.Status
	}
	if !q.From.IsZero() {
		filter.FromDate = &q.From
	}
	if !q.To.IsZero() {
		filter.ToDate = &q.To
	}
	if !q.DueFrom.IsZero() {
		filter.DueFrom = &q.DueFrom
	}
	if !q.DueTo.IsZero() {
		filter.DueTo = &q.DueTo
	}
	return filter
}

// Create registers a purchase with its line items
func (h *PurchaseHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var req appprocurement.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	if creatorID, err := getUserID(c); err == nil {
		req.CreatedBy = &creatorID
	}

	purchase, err := h.purchases.Create(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, purchase)
}

// Get returns a single purchase with its lines
func (h *PurchaseHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchases.Get(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List returns purchases filtered by store, provider, status and date ranges
func (h *PurchaseHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var query listPurchasesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	query.Normalize()

	purchases, total, err := h.purchases.List(c.Request.Context(), orgID, query.toFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, purchases, total, query.Page, query.PageSize)
}

// Update edits a purchase's invoice data and lines
func (h *PurchaseHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req appprocurement.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.purchases.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete removes a purchase. Purchases with recorded payments cannot be
// deleted until their payments are removed first.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchases.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
