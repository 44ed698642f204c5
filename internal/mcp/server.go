package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

// ClientService defines client operations needed by MCP.
type ClientService interface {
	List(ctx context.Context) ([]client.Client, error)
	Get(ctx context.Context, id string) (*client.Client, error)
	Create(ctx context.Context, req client.CreateRequest) (*client.Client, error)
	Update(ctx context.Context, id string, req client.UpdateRequest) (*client.Client, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List(ctx context.Context) ([]project.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

// ConversationService defines conversation operations needed by MCP.
type ConversationService interface {
	List(ctx context.Context) ([]conversation.Conversation, error)
	ListByProject(ctx context.Context, projectID string) ([]conversation.Conversation, error)
	Get(ctx context.Context, id string) (*conversation.Conversation, error)
	Create(ctx context.Context, req conversation.CreateRequest) (*conversation.Conversation, error)
	Update(ctx context.Context, id string, req conversation.UpdateRequest) (*conversation.Conversation, error)
	AddMessage(ctx context.Context, id string, msg conversation.NewMessage) (*conversation.Message, error)
	AddExchange(ctx context.Context, id, userContent, assistantContent string) ([]conversation.Message, error)
	History(ctx context.Context, id string) ([]conversation.Turn, error)
	Delete(ctx context.Context, id string) error
}

// PackageService defines pricing package operations needed by MCP.
type PackageService interface {
	List(ctx context.Context) ([]pricing.Package, error)
	ListActive(ctx context.Context) ([]pricing.Package, error)
	Get(ctx context.Context, id string) (*pricing.Package, error)
	Create(ctx context.Context, req pricing.CreateRequest) (*pricing.Package, error)
	Update(ctx context.Context, id string, req pricing.UpdateRequest) (*pricing.Package, error)
	Delete(ctx context.Context, id string) error
}

// BillingService defines client billing operations needed by MCP.
type BillingService interface {
	List(ctx context.Context) ([]billing.ClientBilling, error)
	ListByClient(ctx context.Context, clientID string) ([]billing.ClientBilling, error)
	Get(ctx context.Context, id string) (*billing.ClientBilling, error)
	Create(ctx context.Context, req billing.CreateRequest) (*billing.ClientBilling, error)
	Update(ctx context.Context, id string, req billing.UpdateRequest) (*billing.ClientBilling, error)
	Delete(ctx context.Context, id string) error
}

// AgentService defines agent operations needed by MCP.
type AgentService interface {
	List(ctx context.Context) ([]agent.AIAgent, error)
	ListActive(ctx context.Context) ([]agent.AIAgent, error)
	Get(ctx context.Context, id string) (*agent.AIAgent, error)
	Create(ctx context.Context, req agent.CreateRequest) (*agent.AIAgent, error)
	Update(ctx context.Context, id string, req agent.UpdateRequest) (*agent.AIAgent, error)
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) (*agent.AIAgent, error)
}

// SettingsService defines platform settings operations needed by MCP.
type SettingsService interface {
	Get(ctx context.Context) (settings.PlatformSettings, error)
	Update(ctx context.Context, req settings.UpdateRequest) (settings.PlatformSettings, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Clients       ClientService
	Projects      ProjectService
	Conversations ConversationService
	Packages      PackageService
	Billing       BillingService
	Agents        AgentService
	Settings      SettingsService
}

// StartConversation creates a conversation, copying the display fields of the attached
// agent and counting one use of it. The usage bump is best effort once the
// conversation exists.
func (s Services) StartConversation(ctx context.Context, req conversation.CreateRequest, logger *slog.Logger) (*conversation.Conversation, error) {
	if req.AgentID == "" || s.Agents == nil {
		return s.Conversations.Create(ctx, req)
	}
	a, err := s.Agents.Get(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	req.AgentName, req.AgentAvatar, req.AgentColor = a.Name, a.Avatar, a.Color
	conv, err := s.Conversations.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Agents.IncrementUsage(ctx, req.AgentID); err != nil && logger != nil {
		logger.Warn("failed to count agent usage", "agent_id", req.AgentID, "conversation_id", conv.ID, "error", err)
	}
	return conv, nil
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "stratdesk",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware())
	if cfg.Services.Settings != nil {
		server.AddReceivingMiddleware(maintenanceMiddleware(cfg.Services.Settings, cfg.Logger))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
