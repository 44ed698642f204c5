// Package seed holds the record set written the first time a store is opened.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/store"
)

// Result reports which slots Apply wrote.
type Result struct {
	Main     bool
	Packages bool
	Billing  bool
	Agents   bool
}

// Main returns the client, project and conversation graph with every denormalized
// counter set from the seeded children.
func Main() ([]client.Client, []project.Project, []conversation.Conversation) {
	clients, projects, convs := Clients(), Projects(), Conversations()

	projectConvs := make(map[string]int)
	clientConvs := make(map[string]int)
	for _, c := range convs {
		projectConvs[c.ProjectID]++
		clientConvs[c.ClientID]++
	}
	clientProjects := make(map[string]int)
	for i := range projects {
		projects[i].Conversations = projectConvs[projects[i].ID]
		clientProjects[projects[i].ClientID]++
	}
	for i := range clients {
		clients[i].Projects = clientProjects[clients[i].ID]
		clients[i].Conversations = clientConvs[clients[i].ID]
	}
	return clients, projects, convs
}

// Apply seeds c. The main graph is gated by the initialized flag; each admin
// collection is written only if its slot is absent. Running Apply again is a no-op.
func Apply(ctx context.Context, c *store.Collections, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var res Result
	var err error

	clients, projects, convs := Main()
	if res.Main, err = c.SeedMain(ctx, clients, projects, convs); err != nil {
		return res, fmt.Errorf("seed main collections: %w", err)
	}
	if res.Packages, err = c.Packages.SeedIfAbsent(ctx, Packages()); err != nil {
		return res, fmt.Errorf("seed pricing packages: %w", err)
	}
	if res.Billing, err = c.Billing.SeedIfAbsent(ctx, Billing()); err != nil {
		return res, fmt.Errorf("seed client billing: %w", err)
	}
	if res.Agents, err = c.Agents.SeedIfAbsent(ctx, Agents()); err != nil {
		return res, fmt.Errorf("seed agents: %w", err)
	}

	logger.Info("seed applied",
		"main", res.Main,
		"packages", res.Packages,
		"billing", res.Billing,
		"agents", res.Agents,
	)
	return res, nil
}
