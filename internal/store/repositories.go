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

var (
	clientProjects = docstore.Counter[client.Client]{
		Field: "projects",
		Ref:   func(c *client.Client) *int { return &c.Projects },
	}
	clientConversations = docstore.Counter[client.Client]{
		Field: "conversations",
		Ref:   func(c *client.Client) *int { return &c.Conversations },
	}
	projectConversations = docstore.Counter[project.Project]{
		Field: "conversations",
		Ref:   func(p *project.Project) *int { return &p.Conversations },
		Touch: func(p *project.Project) { p.LastActive = project.JustNow },
	}
)

// ClientRepository stores clients under KeyClients.
type ClientRepository struct {
	Records[client.Client]
}

func (r *ClientRepository) AdjustProjects(ctx context.Context, clientID string, delta int) (bool, error) {
	return docstore.AdjustCounter(ctx, r.coll, clientID, clientProjects, delta)
}

func (r *ClientRepository) AdjustConversations(ctx context.Context, clientID string, delta int) (bool, error) {
	return docstore.AdjustCounter(ctx, r.coll, clientID, clientConversations, delta)
}

// ProjectRepository stores projects under KeyProjects.
type ProjectRepository struct {
	Records[project.Project]
}

func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]project.Project, error) {
	return r.filter(ctx, func(p project.Project) bool { return p.ClientID == clientID }), nil
}

func (r *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	return r.count(ctx, func(p project.Project) bool { return p.ClientID == clientID }), nil
}

// AdjustConversations also marks the project active when delta is positive.
func (r *ProjectRepository) AdjustConversations(ctx context.Context, projectID string, delta int) (bool, error) {
	return docstore.AdjustCounter(ctx, r.coll, projectID, projectConversations, delta)
}

// ConversationRepository stores conversations, messages inline, under KeyConversations.
type ConversationRepository struct {
	Records[conversation.Conversation]
}

func (r *ConversationRepository) ListByProject(ctx context.Context, projectID string) ([]conversation.Conversation, error) {
	return r.filter(ctx, func(c conversation.Conversation) bool { return c.ProjectID == projectID }), nil
}

func (r *ConversationRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	return r.count(ctx, func(c conversation.Conversation) bool { return c.ProjectID == projectID }), nil
}

// PackageRepository stores pricing packages under KeyPricingPackages.
type PackageRepository struct {
	Records[pricing.Package]
}

// BillingRepository stores client billing records under KeyClientBilling.
type BillingRepository struct {
	Records[billing.ClientBilling]
}

func (r *BillingRepository) ListByClient(ctx context.Context, clientID string) ([]billing.ClientBilling, error) {
	return r.filter(ctx, func(b billing.ClientBilling) bool { return b.ClientID == clientID }), nil
}

// CountActiveByPackage counts billing records with status active on packageID.
func (r *BillingRepository) CountActiveByPackage(ctx context.Context, packageID string) (int, error) {
	return r.count(ctx, func(b billing.ClientBilling) bool {
		return b.PackageID == packageID && b.Status == billing.StatusActive
	}), nil
}

// AgentRepository stores agents under KeyAIAgents.
type AgentRepository struct {
	Records[agent.AIAgent]
}

// SettingsRepository stores the settings singleton under KeyPlatformSettings.
type SettingsRepository struct {
	doc *docstore.Document[settings.PlatformSettings]
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.PlatformSettings, error) {
	return r.doc.Get(ctx, settings.Defaults()), nil
}

func (r *SettingsRepository) Update(ctx context.Context, fn func(*settings.PlatformSettings) error) (settings.PlatformSettings, error) {
	return r.doc.Mutate(ctx, settings.Defaults(), fn)
}
