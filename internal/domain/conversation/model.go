package conversation

import (
	"time"
	"unicode/utf8"
)

const (
	// IDPrefix starts every conversation id.
	IDPrefix = "conv"
	// MessageIDPrefix starts every message id.
	MessageIDPrefix = "msg"
	// JustNow is the relative activity label set on freshly touched records.
	JustNow = "Just now"
	// PreviewLength is the number of characters kept in a preview before the ellipsis.
	PreviewLength = 60
	// DefaultTitle names conversations created without a title.
	DefaultTitle = "New Conversation"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a chat thread inside a project. Project, client and agent fields are
// weak references with denormalized display values.
type Conversation struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	ProjectName string    `json:"projectName"`
	ClientID    string    `json:"clientId"`
	ClientName  string    `json:"clientName"`
	AgentID     string    `json:"agentId"`
	AgentName   string    `json:"agentName"`
	AgentAvatar string    `json:"agentAvatar"`
	AgentColor  string    `json:"agentColor"`
	Title       string    `json:"title"`
	Preview     string    `json:"preview"`
	Timestamp   string    `json:"timestamp"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Conversation) RecordID() string { return c.ID }

// Turn is one role/content pair of the history handed to a chat completion endpoint.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Preview truncates content to PreviewLength characters, appending "..." when cut.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	return string([]rune(content)[:PreviewLength]) + "..."
}
