package store

import (
	"context"

	"github.com/rpggio/stratdesk/internal/docstore"
	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

// Collections holds one repository per slot of a document store.
type Collections struct {
	Clients       *ClientRepository
	Projects      *ProjectRepository
	Conversations *ConversationRepository
	Packages      *PackageRepository
	Billing       *BillingRepository
	Agents        *AgentRepository
	Settings      *SettingsRepository

	docs *docstore.Store
}

// New binds every repository to its slot in docs.
func New(docs *docstore.Store) *Collections {
	return &Collections{
		Clients:       &ClientRepository{newRecords[client.Client](docs, KeyClients)},
		Projects:      &ProjectRepository{newRecords[project.Project](docs, KeyProjects)},
		Conversations: &ConversationRepository{newRecords[conversation.Conversation](docs, KeyConversations)},
		Packages:      &PackageRepository{newRecords[pricing.Package](docs, KeyPricingPackages)},
		Billing:       &BillingRepository{newRecords[billing.ClientBilling](docs, KeyClientBilling)},
		Agents:        &AgentRepository{newRecords[agent.AIAgent](docs, KeyAIAgents)},
		Settings:      &SettingsRepository{doc: docstore.NewDocument[settings.PlatformSettings](docs, KeyPlatformSettings)},
		docs:          docs,
	}
}

// SeedMain seeds clients, projects and conversations once, gated by KeyInitialized.
func (c *Collections) SeedMain(ctx context.Context, clients []client.Client, projects []project.Project, convs []conversation.Conversation) (bool, error) {
	return c.docs.SeedOnce(ctx, KeyInitialized,
		c.Clients.Seed(clients),
		c.Projects.Seed(projects),
		c.Conversations.Seed(convs),
	)
}
