package store

import (
	"log/slog"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
	"github.com/rpggio/stratdesk/internal/repository"
)

// Services is every domain service wired to one set of collections.
type Services struct {
	Clients       *client.Service
	Projects      *project.Service
	Conversations *conversation.Service
	Packages      *pricing.Service
	Billing       *billing.Service
	Agents        *agent.Service
	Settings      *settings.Service
}

// ServiceOptions tunes NewServices.
type ServiceOptions struct {
	DeletePolicy repository.DeletePolicy
	// Cipher seals the billing provider secret key; nil stores it as given.
	Cipher settings.SecretCipher
	Logger *slog.Logger
}

// NewServices wires the domain services to c.
func NewServices(c *Collections, opts ServiceOptions) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Services{
		Clients:       client.NewService(c.Clients, c.Projects, opts.DeletePolicy, logger.With("service", "client")),
		Projects:      project.NewService(c.Projects, c.Clients, c.Conversations, opts.DeletePolicy, logger.With("service", "project")),
		Conversations: conversation.NewService(c.Conversations, c.Projects, c.Clients, logger.With("service", "conversation")),
		Packages:      pricing.NewService(c.Packages, c.Billing, logger.With("service", "pricing")),
		Billing:       billing.NewService(c.Billing, c.Packages, logger.With("service", "billing")),
		Agents:        agent.NewService(c.Agents, logger.With("service", "agent")),
		Settings:      settings.NewService(c.Settings, opts.Cipher, logger.With("service", "settings")),
	}
}
