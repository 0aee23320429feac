package audit

import "encoding/json"

type RecordEntry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Metadata   json.RawMessage
}

type AuditLogResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actor_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  string          `json:"created_at"`
}
