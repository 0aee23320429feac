package session

type SessionResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserAgent  string `json:"user_agent,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
	ClientType string `json:"client_type,omitempty"`
	Active     bool   `json:"active"`
	ExpiresAt  string `json:"expires_at"`
	CreatedAt  string `json:"created_at"`
}
