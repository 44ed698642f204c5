package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

func registerPackageTools(reg *toolRegistry, packages PackageService) {
	addTool(reg, "list_packages", "List pricing packages",
		func(ctx context.Context, in ListPackagesParams) (any, error) {
			if in.ActiveOnly {
				return packages.ListActive(ctx)
			}
			return packages.List(ctx)
		})
	addTool(reg, "create_package", "Create a pricing package",
		func(ctx context.Context, in CreatePackageParams) (any, error) {
			req := pricing.CreateRequest{
				Name:          in.Name,
				Description:   in.Description,
				Price:         in.Price,
				Interval:      in.Interval,
				StripePriceID: in.StripePriceID,
				Features:      in.Features,
				Active:        in.Active,
				Popular:       in.Popular,
			}
			if in.Limits != nil {
				req.Limits = *in.Limits
			}
			return packages.Create(ctx, req)
		})
	addTool(reg, "update_package", "Update a pricing package; omitted fields are unchanged",
		func(ctx context.Context, in UpdatePackageParams) (any, error) {
			return packages.Update(ctx, in.ID, pricing.UpdateRequest{
				Name:          in.Name,
				Description:   in.Description,
				Price:         in.Price,
				Interval:      in.Interval,
				StripePriceID: in.StripePriceID,
				Features:      in.Features,
				Limits:        in.Limits,
				Active:        in.Active,
				Popular:       in.Popular,
			})
		})
	addTool(reg, "delete_package", "Delete a pricing package. Fails while an active billing record uses it",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, packages.Delete(ctx, in.ID))
		})
}

func registerBillingTools(reg *toolRegistry, records BillingService) {
	addTool(reg, "list_billing", "List client billing records, optionally for one client",
		func(ctx context.Context, in ListBillingParams) (any, error) {
			if in.ClientID != "" {
				return records.ListByClient(ctx, in.ClientID)
			}
			return records.List(ctx)
		})
	addTool(reg, "create_billing", "Subscribe a client to a package",
		func(ctx context.Context, in CreateBillingParams) (any, error) {
			start, err := parseTimestamp("current_period_start", in.CurrentPeriodStart)
			if err != nil {
				return nil, err
			}
			end, err := parseTimestamp("current_period_end", in.CurrentPeriodEnd)
			if err != nil {
				return nil, err
			}
			return records.Create(ctx, billing.CreateRequest{
				ClientID:             in.ClientID,
				PackageID:            in.PackageID,
				Status:               in.Status,
				Amount:               in.Amount,
				StripeCustomerID:     in.StripeCustomerID,
				StripeSubscriptionID: in.StripeSubscriptionID,
				CurrentPeriodStart:   start,
				CurrentPeriodEnd:     end,
			})
		})
	addTool(reg, "update_billing", "Update a billing record; omitted fields are unchanged",
		func(ctx context.Context, in UpdateBillingParams) (any, error) {
			req := billing.UpdateRequest{
				PackageID:            in.PackageID,
				Status:               in.Status,
				Amount:               in.Amount,
				StripeCustomerID:     in.StripeCustomerID,
				StripeSubscriptionID: in.StripeSubscriptionID,
			}
			if in.CurrentPeriodStart != nil {
				t, err := parseTimestamp("current_period_start", *in.CurrentPeriodStart)
				if err != nil {
					return nil, err
				}
				req.CurrentPeriodStart = &t
			}
			if in.CurrentPeriodEnd != nil {
				t, err := parseTimestamp("current_period_end", *in.CurrentPeriodEnd)
				if err != nil {
					return nil, err
				}
				req.CurrentPeriodEnd = &t
			}
			return records.Update(ctx, in.ID, req)
		})
	addTool(reg, "delete_billing", "Delete a billing record",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, records.Delete(ctx, in.ID))
		})
}

func registerAgentTools(reg *toolRegistry, agents AgentService) {
	addTool(reg, "list_agents", "List agent personas",
		func(ctx context.Context, in ListAgentsParams) (any, error) {
			if in.ActiveOnly {
				return agents.ListActive(ctx)
			}
			return agents.List(ctx)
		})
	addTool(reg, "create_agent", "Create an agent persona",
		func(ctx context.Context, in CreateAgentParams) (any, error) {
			return agents.Create(ctx, agent.CreateRequest{
				Name:         in.Name,
				Avatar:       in.Avatar,
				Color:        in.Color,
				Description:  in.Description,
				SystemPrompt: in.SystemPrompt,
				Capabilities: in.Capabilities,
				Model:        in.Model,
				Temperature:  in.Temperature,
				MaxTokens:    in.MaxTokens,
				Active:       in.Active,
			})
		})
	addTool(reg, "update_agent", "Update an agent persona; omitted fields are unchanged",
		func(ctx context.Context, in UpdateAgentParams) (any, error) {
			return agents.Update(ctx, in.ID, agent.UpdateRequest{
				Name:         in.Name,
				Avatar:       in.Avatar,
				Color:        in.Color,
				Description:  in.Description,
				SystemPrompt: in.SystemPrompt,
				Capabilities: in.Capabilities,
				Model:        in.Model,
				Temperature:  in.Temperature,
				MaxTokens:    in.MaxTokens,
				Active:       in.Active,
			})
		})
	addTool(reg, "delete_agent", "Delete an agent persona",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, agents.Delete(ctx, in.ID))
		})
	addTool(reg, "increment_agent_usage", "Record one use of an agent",
		func(ctx context.Context, in IDParams) (any, error) {
			return agents.IncrementUsage(ctx, in.ID)
		})
}

func registerSettingsTools(reg *toolRegistry, svc SettingsService) {
	addTool(reg, "get_settings", "Get the platform settings. The billing secret key is redacted",
		func(ctx context.Context, _ NoParams) (any, error) {
			p, err := svc.Get(ctx)
			if err != nil {
				return nil, err
			}
			return p.Redacted(), nil
		})
	addTool(reg, "update_settings", "Update platform settings; omitted fields are unchanged",
		func(ctx context.Context, in UpdateSettingsParams) (any, error) {
			p, err := svc.Update(ctx, settings.UpdateRequest{
				SiteName:             in.SiteName,
				SupportEmail:         in.SupportEmail,
				MaxUploadSizeMB:      in.MaxUploadSizeMB,
				AllowedFileTypes:     in.AllowedFileTypes,
				MaintenanceMode:      in.MaintenanceMode,
				StripePublishableKey: in.StripePublishableKey,
				StripeSecretKey:      in.StripeSecretKey,
			})
			if err != nil {
				return nil, err
			}
			return p.Redacted(), nil
		})
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not an RFC 3339 timestamp", billing.ErrInvalidInput, field)
	}
	return t.UTC(), nil
}
