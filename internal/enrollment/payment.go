package enrollment

import "context"

// Payment is what the student pays for the seats. Zero amounts skip the gateway.
type Payment struct {
	AmountCents int64
	Currency    string
	Method      string
}

type ChargeRequest struct {
	IdempotencyKey string
	StudentID      string
	CourseID       string
	Slots          int
	AmountCents    int64
	Currency       string
	Method         string
}

type ChargeReceipt struct {
	PaymentID string
	Status    string
}

// PaymentGateway is the payments service as seen by enrollment.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeReceipt, error)
}
