package domain

import "time"

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
)

// TransitionPayload carries the side fields an admin action may set.
// Which fields are required depends on the action (see transitionRules).
type TransitionPayload struct {
	TrackingNumber  string
	ShippingCarrier string
	TrackingURL     string
	RejectionReason string
	AdminNotes      string
}

type requiredField struct {
	name string
	get  func(TransitionPayload) string
}

type transitionRule struct {
	from     Status
	to       Status
	required []requiredField
	stamp    func(*Order, time.Time)
}

// transitionRules is the single source of truth for admin transitions:
// precondition status, target status, required payload fields, and the
// timestamps stamped on success. Adding an action means adding a row here,
// nowhere else.
var transitionRules = map[Action]transitionRule{
	ActionApprove: {
		from: StatusPaymentReceived,
		to:   StatusAccepted,
	},
	ActionReject: {
		from: StatusPaymentReceived,
		to:   StatusRejected,
		required: []requiredField{
			{"rejectionReason", func(p TransitionPayload) string { return p.RejectionReason }},
		},
	},
	ActionShip: {
		from: StatusAccepted,
		to:   StatusShipped,
		required: []requiredField{
			{"trackingNumber", func(p TransitionPayload) string { return p.TrackingNumber }},
			{"shippingCarrier", func(p TransitionPayload) string { return p.ShippingCarrier }},
		},
		stamp: func(o *Order, now time.Time) { o.ShippedAt = &now },
	},
	ActionDeliver: {
		from:  StatusShipped,
		to:    StatusDelivered,
		stamp: func(o *Order, now time.Time) { o.DeliveredAt = &now },
	},
}

// ApplyTransition evaluates action against o and returns the updated order.
// o is taken by value: on any failure the caller's entity is untouched, and
// on success the returned copy carries the full payload (status plus side
// fields) so persistence can commit it atomically.
func ApplyTransition(o Order, action Action, p TransitionPayload, now time.Time) (Order, error) {
	rule, ok := transitionRules[action]
	if !ok {
		return o, &InvalidTransitionError{Current: o.Status, Action: action}
	}
	if o.Status != rule.from {
		return o, &InvalidTransitionError{Current: o.Status, Action: action}
	}
	for _, rf := range rule.required {
		if rf.get(p) == "" {
			return o, &MissingFieldError{Field: rf.name}
		}
	}

	o.Status = rule.to
	o.UpdatedAt = now
	if p.TrackingNumber != "" {
		o.TrackingNumber = p.TrackingNumber
	}
	if p.ShippingCarrier != "" {
		o.ShippingCarrier = p.ShippingCarrier
	}
	if p.TrackingURL != "" {
		o.TrackingURL = p.TrackingURL
	}
	if p.RejectionReason != "" {
		o.RejectionReason = p.RejectionReason
	}
	if p.AdminNotes != "" {
		o.AdminNotes = p.AdminNotes
	}
	if rule.stamp != nil {
		rule.stamp(&o, now)
	}
	return o, nil
}

// TransitionPrecondition returns the status an order must be in for action
// to apply. The repository uses it as the compare half of its guarded
// status update, so two concurrent admin actions cannot both win.
func TransitionPrecondition(action Action) (Status, bool) {
	rule, ok := transitionRules[action]
	if !ok {
		return "", false
	}
	return rule.from, true
}
