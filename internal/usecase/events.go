package usecase

// Notification event names, one per admin action plus the registration
// payment terminal.
const (
	EventOrderApproved               = "order.approved"
	EventOrderRejected               = "order.rejected"
	EventOrderShipped                = "order.shipped"
	EventOrderDelivered              = "order.delivered"
	EventRegistrationPaymentReceived = "registration.payment_received"
)

// NotificationEvent is the fire-and-forget payload handed to the
// notification pipeline after a successful commit. It carries the contact
// snapshot so the mailer never has to look the customer up.
type NotificationEvent struct {
	Event       string `json:"event"`
	OrderNumber string `json:"orderNumber"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`

	TrackingNumber  string `json:"trackingNumber,omitempty"`
	ShippingCarrier string `json:"shippingCarrier,omitempty"`
	TrackingURL     string `json:"trackingUrl,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// PaymentSettledMsg is published by the gateway webhook bridge on Kafka
// when the processor settles a payment asynchronously.
type PaymentSettledMsg struct {
	OrderID          string `json:"orderId"`
	RegistrationID   string `json:"registrationId,omitempty"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
	AmountPaise      int64  `json:"amountPaise"`
}
