package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appprocurement "github.com/tiendapro/backend/internal/application/procurement"
)

// PaymentHandler handles payment endpoints. Payments are created and
// listed through their purchase, and edited or deleted by their own ID.
type PaymentHandler struct {
	BaseHandler
	payments *appprocurement.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *appprocurement.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes mounts payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchases/:id/payments", h.Record)
	rg.GET("/purchases/:id/payments", h.ListByPurchase)

	payments := rg.Group("/payments")
	payments.PUT("/:id", h.Edit)
	payments.DELETE("/:id", h.Delete)
}

// Record registers a payment against a purchase and returns the payment
// together with the reconciled purchase
func (h *PaymentHandler) Record(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req appprocurement.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	recordedBy, err := getUserID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	req.RecordedBy = recordedBy

	result, err := h.payments.Record(c.Request.Context(), orgID, purchaseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// ListByPurchase returns all payments recorded against a purchase
func (h *PaymentHandler) ListByPurchase(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	payments, err := h.payments.ListByPurchase(c.Request.Context(), orgID, purchaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Edit corrects a recorded payment and re-reconciles its purchase
func (h *PaymentHandler) Edit(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req appprocurement.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.payments.Edit(c.Request.Context(), orgID, paymentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a payment and returns the purchase state after the
// amount is rolled back
func (h *PaymentHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	purchase, err := h.payments.Delete(c.Request.Context(), orgID, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}
