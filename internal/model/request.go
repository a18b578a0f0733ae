package model

import "time"

// RequestStatus is the lifecycle state of a payment request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusPaid      RequestStatus = "PAID"
	StatusExpired   RequestStatus = "EXPIRED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// PaymentRequest is the public+private record of one payment ask.
// Public fields are visible to any payer opening the payment link;
// Ciphertext is opaque without the owner's master key.
type PaymentRequest struct {
	ID         string        `json:"id"`
	Reference  string        `json:"reference"` // payment-protocol correlation key
	Amount     string        `json:"amount"`    // decimal string, native-asset units
	TokenMint  string        `json:"tokenMint"`
	Label      string        `json:"label"`
	Icon       string        `json:"icon"`
	Ciphertext string        `json:"ciphertext"` // encrypted PrivateInvoiceData
	Status     RequestStatus `json:"status"`
	Creator    string        `json:"creator"` // partition key, immutable
	Payer      string        `json:"payer,omitempty"`
	Signature  string        `json:"signature,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}

// Expired reports whether a still-pending request is past its deadline.
// Expiry is a read-time classification only; the stored status never
// transitions to EXPIRED.
func (r *PaymentRequest) Expired(now time.Time) bool {
	return r.Status == StatusPending && now.After(r.ExpiresAt)
}

// ExpiringSoon reports whether a pending request expires within the window.
func (r *PaymentRequest) ExpiringSoon(now time.Time, window time.Duration) bool {
	return r.Status == StatusPending && r.ExpiresAt.Before(now.Add(window))
}

// CreateRequestParams carries the merchant-supplied fields for a new request.
// Zero values are filled with defaults by the store.
type CreateRequestParams struct {
	Amount     string    `json:"amount"`
	TokenMint  string    `json:"tokenMint"`
	Label      string    `json:"label"`
	Icon       string    `json:"icon"`
	Ciphertext string    `json:"ciphertext"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
