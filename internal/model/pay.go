package model

// PayResponse represents response for POST /pay/{id}
type PayResponse struct {
	Signature string `json:"signature"`
	Payer     string `json:"payer"`
}

// ReconcileRequest represents request for POST /pay/{id}/reconcile
type ReconcileRequest struct {
	Signature string `json:"signature"`
	Payer     string `json:"payer"`
}
