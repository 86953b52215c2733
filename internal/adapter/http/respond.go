package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/swapnil-jadhav-official/anamico-india-sub001/internal/entity"
)

// respondErr maps the domain error taxonomy onto HTTP statuses. Typed
// errors keep their diagnostic detail; anything unrecognized is a 500 with
// no internals leaked.
func respondErr(c *gin.Context, err error) {
	var (
		ve *domain.ValidationError
		mf *domain.MissingFieldError
		it *domain.InvalidTransitionError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "field": ve.Field, "detail": ve.Reason})
	case errors.As(err, &mf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_field", "field": mf.Field})
	case errors.As(err, &it):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid_transition", "currentStatus": it.Current, "action": it.Action})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrPaymentVerificationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_verification_failed"})
	case errors.Is(err, domain.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "gateway_unavailable"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

type shippingDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

func (s shippingDTO) toDomain() domain.ShippingSnapshot {
	return domain.ShippingSnapshot{
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		Pincode: s.Pincode,
	}
}

type orderItemDTO struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName" binding:"required"`
	PricePaise  int64  `json:"pricePaise" binding:"gte=0"`
	Quantity    int    `json:"quantity" binding:"required,gte=1"`
}

type orderResp struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	SubtotalPaise int64          `json:"subtotalPaise"`
	TaxPaise      int64          `json:"taxPaise"`
	TotalPaise    int64          `json:"totalPaise"`
	PaidPaise     int64          `json:"paidPaise"`
	Items         []orderItemDTO `json:"items"`

	TrackingNumber  string `json:"trackingNumber,omitempty"`
	ShippingCarrier string `json:"shippingCarrier,omitempty"`
	TrackingURL     string `json:"trackingUrl,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

func toOrderResp(o *domain.Order) orderResp {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			PricePaise:  it.PricePaise,
			Quantity:    it.Quantity,
		})
	}
	return orderResp{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		SubtotalPaise:   o.SubtotalPaise,
		TaxPaise:        o.TaxPaise,
		TotalPaise:      o.TotalPaise,
		PaidPaise:       o.PaidPaise,
		Items:           items,
		TrackingNumber:  o.TrackingNumber,
		ShippingCarrier: o.ShippingCarrier,
		TrackingURL:     o.TrackingURL,
		RejectionReason: o.RejectionReason,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
	}
}
