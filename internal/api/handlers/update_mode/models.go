package update_mode

// UpdateModeRequest HTTP request model
type UpdateModeRequest struct {
	Simulated *bool `json:"simulated"`
}

// ModeResponse HTTP response model
type ModeResponse struct {
	Simulated bool `json:"simulated"`
}
