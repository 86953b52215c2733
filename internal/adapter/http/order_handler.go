package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/adapter/http/middleware"
	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
	"github.com/swapnil-jadhav-official/anamico-india-sub001/internal/usecase"
)

type OrderHandler struct {
	create   *usecase.CreateOrder
	initiate *usecase.InitiatePayment
	record   *usecase.RecordPayment
	query    usecase.OrderRepo
}

func NewOrderHandler(create *usecase.CreateOrder, initiate *usecase.InitiatePayment, record *usecase.RecordPayment, query usecase.OrderRepo) *OrderHandler {
	return &OrderHandler{create: create, initiate: initiate, record: record, query: query}
}

type createOrderReq struct {
	Shipping      shippingDTO    `json:"shipping" binding:"required"`
	Items         []orderItemDTO `json:"items" binding:"required,min=1,dive"`
	SubtotalPaise int64          `json:"subtotalPaise" binding:"required,gt=0"`
}

// CreateOrder handler: translate to use case input.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
		return
	}

	items := make([]usecase.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.ItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PricePaise:  it.PricePaise,
			Quantity:    it.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:         middleware.CallerID(c),
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
		Shipping:       req.Shipping.toDomain(),
		Items:          items,
		SubtotalPaise:  req.SubtotalPaise,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResp(order))
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.query.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	// customers only see their own orders
	if middleware.CallerRole(c) != usecase.RoleAdmin && order.UserID != middleware.CallerID(c) {
		respondErr(c, domain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

type initiatePaymentReq struct {
	PaymentType string `json:"paymentType" binding:"omitempty,oneof=full advance"`
}

func (h *OrderHandler) InitiatePayment(c *gin.Context) {
	var req initiatePaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
		return
	}
	if req.PaymentType == "" {
		req.PaymentType = usecase.PaymentTypeFull
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	desc, err := h.initiate.Execute(ctx, c.Param("id"), req.PaymentType)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gatewayOrderId": desc.GatewayOrderID,
		"amountPaise":    desc.AmountPaise,
		"currency":       desc.Currency,
		"orderNumber":    desc.OrderNumber,
	})
}

type confirmPaymentReq struct {
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
	AmountPaise      int64  `json:"amountPaise" binding:"required,gt=0"`
}

func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.record.Execute(ctx, usecase.RecordPaymentInput{
		OrderID:          c.Param("id"),
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		AmountPaise:      req.AmountPaise,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}
