package library

import (
	"context"
	"strings"

	"github.com/poiesic/rightsdesk/core"
)

// PaymentRequest describes a purchase of one premium template.
type PaymentRequest struct {
	TemplateId core.ID
	Title      string
	Amount     float64
	Reference  string // Caller-supplied transaction reference, if any
}

// PaymentReceipt is the gateway's confirmation of a payment.
type PaymentReceipt struct {
	Reference string
	Amount    float64
}

// PaymentGateway completes payments for premium templates.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}

// ManualGateway accepts payments made outside the application. It trusts the
// transaction reference the user supplies and only checks that one is present.
type ManualGateway struct{}

var _ PaymentGateway = ManualGateway{}

// CreateSession returns a receipt for the supplied reference.
func (ManualGateway) CreateSession(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	ref := strings.TrimSpace(req.Reference)
	if ref == "" {
		return nil, ErrReferenceRequired
	}
	return &PaymentReceipt{Reference: ref, Amount: req.Amount}, nil
}
