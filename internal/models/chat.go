package models

// Chat roles, matching the roles the Gemini API uses.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one turn of a coach conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
