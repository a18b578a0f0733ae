package model

// LineItem is one billed line inside a private invoice.
type LineItem struct {
	Description string `json:"description"`
	Amount      string `json:"amount"` // decimal string
}

// PrivateInvoiceData is the confidential part of a request. It is
// serialized and encrypted into PaymentRequest.Ciphertext and never
// persisted in plaintext. Empty items/notes are legal.
type PrivateInvoiceData struct {
	Title string     `json:"title"`
	Items []LineItem `json:"items"`
	Notes string     `json:"notes"`
}
