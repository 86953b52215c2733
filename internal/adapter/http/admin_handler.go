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

type AdminHandler struct {
	action *usecase.AdminAction
}

func NewAdminHandler(action *usecase.AdminAction) *AdminHandler {
	return &AdminHandler{action: action}
}

type adminActionReq struct {
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCarrier string `json:"shippingCarrier"`
	TrackingURL     string `json:"trackingUrl"`
	RejectionReason string `json:"rejectionReason"`
	AdminNotes      string `json:"adminNotes"`
}

// Transition handles POST /v1/admin/orders/:id/:action for
// approve | reject | ship | deliver. Which payload fields each action
// requires is the state machine's business, not the handler's.
func (h *AdminHandler) Transition(c *gin.Context) {
	action := domain.Action(c.Param("action"))

	var req adminActionReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": err.Error()})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.action.Execute(ctx, usecase.AdminActionInput{
		OrderID:   c.Param("id"),
		Action:    action,
		ActorRole: middleware.CallerRole(c),
		Payload: domain.TransitionPayload{
			TrackingNumber:  req.TrackingNumber,
			ShippingCarrier: req.ShippingCarrier,
			TrackingURL:     req.TrackingURL,
			RejectionReason: req.RejectionReason,
			AdminNotes:      req.AdminNotes,
		},
	})
	if err != nil {
		middleware.CountAdminTransition(string(action), "rejected")
		respondErr(c, err)
		return
	}
	middleware.CountAdminTransition(string(action), "applied")
	c.JSON(http.StatusOK, toOrderResp(order))
}
