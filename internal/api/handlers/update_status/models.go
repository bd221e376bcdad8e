package update_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status       string  `json:"status"`
	EscrowTxHash *string `json:"escrowTxHash,omitempty"`
}
