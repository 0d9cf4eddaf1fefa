package pricing

import "context"

// Quoter defines the delivery-fee collaborator consumed after a successful
// address validation. Implementations price a delivery for a creator given
// the validated distance to the customer.
type Quoter interface {
	// Quote returns the delivery fee for a creator at the given distance.
	// WithinServiceRadius=false means the creator does not deliver that far;
	// the fee is zero in that case.
	Quote(ctx context.Context, creatorID string, distanceKm float64) (Quote, error)
}

// Quote is the outcome of pricing a delivery.
type Quote struct {
	FeeCents            int64  `json:"fee_cents"`
	Currency            string `json:"currency"`
	WithinServiceRadius bool   `json:"within_service_radius"`
}

// PricingError represents a pricing-specific error with a code and message.
type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return e.Message
}

const (
	codeInvalid  = "invalid"
	codeInternal = "internal"
)

var (
	// ErrCreatorRequired is returned when no creator ID is provided.
	ErrCreatorRequired = &PricingError{Code: codeInvalid, Message: "Creator ID is required"}

	// ErrInvalidDistance is returned for negative or non-finite distances.
	ErrInvalidDistance = &PricingError{Code: codeInvalid, Message: "Distance must be a non-negative number"}

	// ErrNoBands is returned when a quoter is configured without fee bands.
	ErrNoBands = &PricingError{Code: codeInternal, Message: "No fee bands configured"}
)
