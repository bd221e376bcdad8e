package get_mode

// ModeResponse HTTP response model
type ModeResponse struct {
	Simulated bool `json:"simulated"`
}
