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

type RegistrationHandler struct {
	regs *usecase.Registrations
}

func NewRegistrationHandler(regs *usecase.Registrations) *RegistrationHandler {
	return &RegistrationHandler{regs: regs}
}

type createRegistrationReq struct {
	DeviceModel      string      `json:"deviceModel" binding:"required"`
	SerialNumber     string      `json:"serialNumber"`
	TermYears        int         `json:"termYears" binding:"required,gte=1"`
	DeviceFeePaise   int64       `json:"deviceFeePaise" binding:"gte=0"`
	SupportFeePaise  int64       `json:"supportFeePaise" binding:"gte=0"`
	DeliveryFeePaise int64       `json:"deliveryFeePaise" binding:"gte=0"`
	PaymentMethod    string      `json:"paymentMethod" binding:"required"`
	Contact          shippingDTO `json:"contact" binding:"required"`
}

type registrationResp struct {
	ID                 string    `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	DeviceModel        string    `json:"deviceModel"`
	TermYears          int       `json:"termYears"`
	SubtotalPaise      int64     `json:"subtotalPaise"`
	GSTPaise           int64     `json:"gstPaise"`
	TotalPaise         int64     `json:"totalPaise"`
	PaidPaise          int64     `json:"paidPaise"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"paymentStatus"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toRegistrationResp(r *domain.Registration) registrationResp {
	return registrationResp{
		ID:                 r.ID,
		RegistrationNumber: r.RegistrationNumber,
		DeviceModel:        r.DeviceModel,
		TermYears:          r.TermYears,
		SubtotalPaise:      r.SubtotalPaise,
		GSTPaise:           r.GSTPaise,
		TotalPaise:         r.TotalPaise,
		PaidPaise:          r.PaidPaise,
		Status:             string(r.Status),
		PaymentStatus:      string(r.PaymentStatus),
		CreatedAt:          r.CreatedAt,
	}
}

func (h *RegistrationHandler) Create(c *gin.Context) {
	var req createRegistrationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reg, err := h.regs.Create(ctx, usecase.CreateRegistrationInput{
		UserID:           middleware.CallerID(c),
		DeviceModel:      req.DeviceModel,
		SerialNumber:     req.SerialNumber,
		TermYears:        req.TermYears,
		DeviceFeePaise:   req.DeviceFeePaise,
		SupportFeePaise:  req.SupportFeePaise,
		DeliveryFeePaise: req.DeliveryFeePaise,
		PaymentMethod:    req.PaymentMethod,
		Contact:          req.Contact.toDomain(),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRegistrationResp(reg))
}

func (h *RegistrationHandler) InitiatePayment(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	desc, err := h.regs.InitiatePayment(ctx, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gatewayOrderId":     desc.GatewayOrderID,
		"amountPaise":        desc.AmountPaise,
		"currency":           desc.Currency,
		"registrationNumber": desc.OrderNumber,
	})
}

func (h *RegistrationHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reg, err := h.regs.RecordPayment(ctx, c.Param("id"), usecase.RecordPaymentInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		AmountPaise:      req.AmountPaise,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toRegistrationResp(reg))
}

// Status is the public lookup: registration number + contact email in,
// registration plus derived validity out.
func (h *RegistrationHandler) Status(c *gin.Context) {
	number := c.Query("number")
	email := c.Query("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	res, err := h.regs.Status(ctx, number, email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"registration": toRegistrationResp(res.Registration),
		"validity": gin.H{
			"expiryDate":     res.Validity.ExpiryDate.Format("2006-01-02"),
			"remainingDays":  res.Validity.RemainingDays,
			"isExpired":      res.Validity.IsExpired,
			"isExpiringSoon": res.Validity.IsExpiringSoon,
		},
	})
}
