package domain

// ChatMessage is one turn of an assistant conversation. Role is either
// "user" or "assistant" on the wire.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
