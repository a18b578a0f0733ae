package model

// Stats are derived aggregates over one creator's partition,
// computed fresh on every call.
type Stats struct {
	TotalCollected  string `json:"totalCollected"` // sum of amount over PAID, decimal string
	PendingRequests int    `json:"pendingRequests"`
	PaidToday       int    `json:"paidToday"`
	ExpiringSoon    int    `json:"expiringSoon"`
}
