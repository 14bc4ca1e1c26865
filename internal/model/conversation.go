package model

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in an interview transcript. Transcripts are held in
// memory for the lifetime of a session and are not persisted.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
