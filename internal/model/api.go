package model

import "time"

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CreateRequestBody represents request for POST /api/requests
type CreateRequestBody struct {
	Creator   string             `json:"creator"`
	Amount    string             `json:"amount"`
	TokenMint string             `json:"tokenMint"`
	Label     string             `json:"label"`
	Icon      string             `json:"icon"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Invoice   PrivateInvoiceData `json:"invoice"`
}

// PaymentPage represents response for GET /pay/{id}: the public view of a
// request plus the pieces a payer needs. Ciphertext is deliberately absent.
type PaymentPage struct {
	ID         string        `json:"id"`
	Reference  string        `json:"reference"`
	Amount     string        `json:"amount"`
	TokenMint  string        `json:"tokenMint"`
	Label      string        `json:"label"`
	Icon       string        `json:"icon"`
	Status     RequestStatus `json:"status"`
	Creator    string        `json:"creator"`
	ExpiresAt  time.Time     `json:"expiresAt"`
	Expired    bool          `json:"expired"`    // derived, never stored
	PageURL    string        `json:"pageUrl"`    // shareable page address
	PaymentURL string        `json:"paymentUrl"` // solana: URL for wallets
	QRCode     string        `json:"qrCode"`     // base64 PNG
}
