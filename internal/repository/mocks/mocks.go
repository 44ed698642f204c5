package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

// ClientRepository is a mock for client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*client.Client); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Create(ctx context.Context, v *client.Client) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *ClientRepository) Update(ctx context.Context, id string, fn func(*client.Client) error) (*client.Client, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*client.Client)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *ClientRepository) Delete(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*client.Client); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) AdjustProjects(ctx context.Context, clientID string, delta int) (bool, error) {
	args := m.Called(ctx, clientID, delta)
	return args.Bool(0), args.Error(1)
}

func (m *ClientRepository) AdjustConversations(ctx context.Context, clientID string, delta int) (bool, error) {
	args := m.Called(ctx, clientID, delta)
	return args.Bool(0), args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*project.Project); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Create(ctx context.Context, v *project.Project) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *ProjectRepository) Update(ctx context.Context, id string, fn func(*project.Project) error) (*project.Project, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*project.Project)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*project.Project); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]project.Project, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) AdjustConversations(ctx context.Context, projectID string, delta int) (bool, error) {
	args := m.Called(ctx, projectID, delta)
	return args.Bool(0), args.Error(1)
}

// ConversationRepository is a mock for conversation.Repository.
type ConversationRepository struct {
	mock.Mock
}

func (m *ConversationRepository) List(ctx context.Context) ([]conversation.Conversation, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]conversation.Conversation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConversationRepository) Get(ctx context.Context, id string) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*conversation.Conversation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConversationRepository) Create(ctx context.Context, v *conversation.Conversation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *ConversationRepository) Update(ctx context.Context, id string, fn func(*conversation.Conversation) error) (*conversation.Conversation, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*conversation.Conversation)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *ConversationRepository) Delete(ctx context.Context, id string) (*conversation.Conversation, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*conversation.Conversation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConversationRepository) ListByProject(ctx context.Context, projectID string) ([]conversation.Conversation, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]conversation.Conversation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConversationRepository) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

// PackageRepository is a mock for pricing.Repository.
type PackageRepository struct {
	mock.Mock
}

func (m *PackageRepository) List(ctx context.Context) ([]pricing.Package, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]pricing.Package); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PackageRepository) Get(ctx context.Context, id string) (*pricing.Package, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*pricing.Package); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PackageRepository) Create(ctx context.Context, v *pricing.Package) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *PackageRepository) Update(ctx context.Context, id string, fn func(*pricing.Package) error) (*pricing.Package, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*pricing.Package)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *PackageRepository) Delete(ctx context.Context, id string) (*pricing.Package, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*pricing.Package); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// BillingRepository is a mock for billing.Repository.
type BillingRepository struct {
	mock.Mock
}

func (m *BillingRepository) List(ctx context.Context) ([]billing.ClientBilling, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]billing.ClientBilling); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillingRepository) Get(ctx context.Context, id string) (*billing.ClientBilling, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*billing.ClientBilling); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillingRepository) Create(ctx context.Context, v *billing.ClientBilling) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *BillingRepository) Update(ctx context.Context, id string, fn func(*billing.ClientBilling) error) (*billing.ClientBilling, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*billing.ClientBilling)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *BillingRepository) Delete(ctx context.Context, id string) (*billing.ClientBilling, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*billing.ClientBilling); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillingRepository) ListByClient(ctx context.Context, clientID string) ([]billing.ClientBilling, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]billing.ClientBilling); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BillingRepository) CountActiveByPackage(ctx context.Context, packageID string) (int, error) {
	args := m.Called(ctx, packageID)
	return args.Int(0), args.Error(1)
}

// AgentRepository is a mock for agent.Repository.
type AgentRepository struct {
	mock.Mock
}

func (m *AgentRepository) List(ctx context.Context) ([]agent.AIAgent, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]agent.AIAgent); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AgentRepository) Get(ctx context.Context, id string) (*agent.AIAgent, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*agent.AIAgent); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AgentRepository) Create(ctx context.Context, v *agent.AIAgent) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// Update applies fn to a copy of the record configured as the first return value.
func (m *AgentRepository) Update(ctx context.Context, id string, fn func(*agent.AIAgent) error) (*agent.AIAgent, error) {
	args := m.Called(ctx, id, fn)
	current, ok := args.Get(0).(*agent.AIAgent)
	if !ok || args.Error(1) != nil {
		return nil, args.Error(1)
	}
	updated := *current
	if err := fn(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *AgentRepository) Delete(ctx context.Context, id string) (*agent.AIAgent, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*agent.AIAgent); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// SettingsRepository is a mock for settings.Repository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Get(ctx context.Context) (settings.PlatformSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.PlatformSettings), args.Error(1)
}

// Update applies fn to a copy of the settings configured as the first return value.
func (m *SettingsRepository) Update(ctx context.Context, fn func(*settings.PlatformSettings) error) (settings.PlatformSettings, error) {
	args := m.Called(ctx, fn)
	if err := args.Error(1); err != nil {
		return settings.PlatformSettings{}, err
	}
	updated := args.Get(0).(settings.PlatformSettings)
	if err := fn(&updated); err != nil {
		return settings.PlatformSettings{}, err
	}
	return updated, nil
}
