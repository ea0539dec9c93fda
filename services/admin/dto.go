package admin

type UserSummary struct {
	ID       string `json:"id"`
	MSV      string `json:"msv"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ActivationRequest is the optional body of a lock request. The "active"
// query parameter takes precedence.
type ActivationRequest struct {
	Active *bool `json:"active"`
}
