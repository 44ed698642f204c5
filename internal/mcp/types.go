package mcp

import (
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
)

type NoParams struct{}

type IDParams struct {
	ID string `json:"id" jsonschema:"record ID"`
}

type CreateClientParams struct {
	Name        string `json:"name" jsonschema:"client display name"`
	Industry    string `json:"industry,omitempty"`
	Avatar      string `json:"avatar,omitempty" jsonschema:"avatar glyph; defaults to the name's initials"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

type UpdateClientParams struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	AvatarColor *string `json:"avatar_color,omitempty"`
}

type ListProjectsParams struct {
	ClientID string `json:"client_id,omitempty" jsonschema:"only projects of this client"`
}

type CreateProjectParams struct {
	ClientID  string         `json:"client_id"`
	Name      string         `json:"name"`
	Type      string         `json:"type,omitempty"`
	Status    project.Status `json:"status,omitempty" jsonschema:"active, in-progress, planning or completed"`
	Progress  int            `json:"progress,omitempty" jsonschema:"0 to 100"`
	Members   int            `json:"members,omitempty"`
	StartDate string         `json:"start_date,omitempty"`
	DueDate   string         `json:"due_date,omitempty"`
}

type UpdateProjectParams struct {
	ID        string          `json:"id"`
	Name      *string         `json:"name,omitempty"`
	Type      *string         `json:"type,omitempty"`
	Status    *project.Status `json:"status,omitempty"`
	Progress  *int            `json:"progress,omitempty"`
	Members   *int            `json:"members,omitempty"`
	StartDate *string         `json:"start_date,omitempty"`
	DueDate   *string         `json:"due_date,omitempty"`
}

type ListConversationsParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"only conversations of this project"`
}

type CreateConversationParams struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title,omitempty"`
	AgentID   string `json:"agent_id,omitempty" jsonschema:"agent persona to attach"`
}

type UpdateConversationParams struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	AgentID *string `json:"agent_id,omitempty"`
}

type AddMessageParams struct {
	ConversationID string            `json:"conversation_id"`
	Role           conversation.Role `json:"role" jsonschema:"user or assistant"`
	Content        string            `json:"content"`
}

type AddExchangeParams struct {
	ConversationID   string `json:"conversation_id"`
	UserContent      string `json:"user_content"`
	AssistantContent string `json:"assistant_content"`
}

type ListPackagesParams struct {
	ActiveOnly bool `json:"active_only,omitempty"`
}

type CreatePackageParams struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         float64          `json:"price"`
	Interval      pricing.Interval `json:"interval,omitempty" jsonschema:"month or year"`
	StripePriceID string           `json:"stripe_price_id,omitempty"`
	Features      []string         `json:"features,omitempty"`
	Limits        *pricing.Limits  `json:"limits,omitempty" jsonschema:"-1 means unlimited"`
	Active        bool             `json:"active,omitempty"`
	Popular       bool             `json:"popular,omitempty"`
}

type UpdatePackageParams struct {
	ID            string            `json:"id"`
	Name          *string           `json:"name,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Price         *float64          `json:"price,omitempty"`
	Interval      *pricing.Interval `json:"interval,omitempty"`
	StripePriceID *string           `json:"stripe_price_id,omitempty"`
	Features      []string          `json:"features,omitempty"`
	Limits        *pricing.Limits   `json:"limits,omitempty"`
	Active        *bool             `json:"active,omitempty"`
	Popular       *bool             `json:"popular,omitempty"`
}

type ListBillingParams struct {
	ClientID string `json:"client_id,omitempty"`
}

type CreateBillingParams struct {
	ClientID             string         `json:"client_id"`
	PackageID            string         `json:"package_id"`
	Status               billing.Status `json:"status,omitempty" jsonschema:"active, past_due, canceled, trialing or incomplete"`
	Amount               float64        `json:"amount,omitempty" jsonschema:"defaults to the package price"`
	StripeCustomerID     string         `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string         `json:"stripe_subscription_id,omitempty"`
	CurrentPeriodStart   string         `json:"current_period_start,omitempty" jsonschema:"RFC 3339 timestamp"`
	CurrentPeriodEnd     string         `json:"current_period_end,omitempty" jsonschema:"RFC 3339 timestamp"`
}

type UpdateBillingParams struct {
	ID                   string          `json:"id"`
	PackageID            *string         `json:"package_id,omitempty"`
	Status               *billing.Status `json:"status,omitempty"`
	Amount               *float64        `json:"amount,omitempty"`
	StripeCustomerID     *string         `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string         `json:"stripe_subscription_id,omitempty"`
	CurrentPeriodStart   *string         `json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *string         `json:"current_period_end,omitempty"`
}

type ListAgentsParams struct {
	ActiveOnly bool `json:"active_only,omitempty"`
}

type CreateAgentParams struct {
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar,omitempty"`
	Color        string   `json:"color,omitempty"`
	Description  string   `json:"description,omitempty"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Model        string   `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty" jsonschema:"0 to 2"`
	MaxTokens    int      `json:"max_tokens,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

type UpdateAgentParams struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name,omitempty"`
	Avatar       *string  `json:"avatar,omitempty"`
	Color        *string  `json:"color,omitempty"`
	Description  *string  `json:"description,omitempty"`
	SystemPrompt *string  `json:"system_prompt,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Model        *string  `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

type UpdateSettingsParams struct {
	SiteName             *string  `json:"site_name,omitempty"`
	SupportEmail         *string  `json:"support_email,omitempty"`
	MaxUploadSizeMB      *int     `json:"max_upload_size_mb,omitempty"`
	AllowedFileTypes     []string `json:"allowed_file_types,omitempty"`
	MaintenanceMode      *bool    `json:"maintenance_mode,omitempty"`
	StripePublishableKey *string  `json:"stripe_publishable_key,omitempty"`
	StripeSecretKey      *string  `json:"stripe_secret_key,omitempty"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// AddMessageResponse returns the appended message with the conversation's new preview.
type AddMessageResponse struct {
	Message conversation.Message `json:"message"`
	Preview string               `json:"preview"`
}
