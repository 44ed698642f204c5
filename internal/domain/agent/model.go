package agent

import "time"

// IDPrefix starts every agent id.
const IDPrefix = "agent"

const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
	MaxTemperature     = 2.0
)

// AIAgent is a configured assistant persona. UsageCount grows by one each time a
// conversation is started with the agent and is never reset.
type AIAgent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Color        string    `json:"color"`
	Description  string    `json:"description"`
	SystemPrompt string    `json:"systemPrompt"`
	Capabilities []string  `json:"capabilities"`
	Model        string    `json:"model"`
	Temperature  float64   `json:"temperature"`
	MaxTokens    int       `json:"maxTokens"`
	Active       bool      `json:"active"`
	UsageCount   int       `json:"usageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a AIAgent) RecordID() string { return a.ID }
