package store_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/stratdesk/internal/crypto"
	"github.com/rpggio/stratdesk/internal/docstore"
	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
	"github.com/rpggio/stratdesk/internal/kv"
	"github.com/rpggio/stratdesk/internal/redisstore"
	"github.com/rpggio/stratdesk/internal/repository"
	"github.com/rpggio/stratdesk/internal/sqlstore"
	"github.com/rpggio/stratdesk/internal/store"
)

const marketPrompt = "Help me analyze the target market for our new healthcare product and its growth potential over the next decade"

type testEnv struct {
	kv   kv.Store
	cols *store.Collections
	svc  *store.Services
}

type backend struct {
	name string
	open func(t *testing.T) kv.Store
}

var backends = []backend{
	{"memory", func(t *testing.T) kv.Store { return kv.NewMemory() }},
	{"sqlite", func(t *testing.T) kv.Store {
		s, err := sqlstore.Open(context.Background(), "sqlite", ":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}},
	{"redis", func(t *testing.T) kv.Store {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		return redisstore.New(rdb)
	}},
}

func newTestEnv(t *testing.T, backing kv.Store, opts store.ServiceOptions) *testEnv {
	t.Helper()
	cols := store.New(docstore.New(backing, nil))
	return &testEnv{kv: backing, cols: cols, svc: store.NewServices(cols, opts)}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, newTestEnv(t, b.open(t), store.ServiceOptions{DeletePolicy: repository.DeleteForbid}))
		})
	}
}

func TestIntegration_ConcreteScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()

		c1, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "C1"})
		require.NoError(t, err)
		require.Zero(t, c1.Projects)

		p1, err := env.svc.Projects.Create(ctx, project.CreateRequest{ClientID: c1.ID, Name: "P1"})
		require.NoError(t, err)
		c1, err = env.svc.Clients.Get(ctx, c1.ID)
		require.NoError(t, err)
		require.Equal(t, 1, c1.Projects)

		v1, err := env.svc.Conversations.Create(ctx, conversation.CreateRequest{ProjectID: p1.ID, Title: "V1"})
		require.NoError(t, err)
		p1, err = env.svc.Projects.Get(ctx, p1.ID)
		require.NoError(t, err)
		require.Equal(t, 1, p1.Conversations)
		require.Equal(t, project.JustNow, p1.LastActive)

		_, err = env.svc.Conversations.AddMessage(ctx, v1.ID, conversation.NewMessage{Role: conversation.RoleUser, Content: marketPrompt})
		require.NoError(t, err)
		v1, err = env.svc.Conversations.Get(ctx, v1.ID)
		require.NoError(t, err)
		require.Equal(t, marketPrompt[:60]+"...", v1.Preview)

		require.NoError(t, env.svc.Conversations.Delete(ctx, v1.ID))
		p1, err = env.svc.Projects.Get(ctx, p1.ID)
		require.NoError(t, err)
		require.Zero(t, p1.Conversations)

		require.NoError(t, env.svc.Projects.Delete(ctx, p1.ID))
		c1, err = env.svc.Clients.Get(ctx, c1.ID)
		require.NoError(t, err)
		require.Zero(t, c1.Projects)
		require.Zero(t, c1.Conversations)
	})
}

func TestIntegration_ProjectCounterConsistency(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		rng := rand.New(rand.NewPCG(1, 2))

		c, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
		require.NoError(t, err)

		var live []string
		for step := 0; step < 40; step++ {
			if len(live) == 0 || rng.IntN(3) > 0 {
				p, err := env.svc.Projects.Create(ctx, project.CreateRequest{ClientID: c.ID, Name: fmt.Sprintf("P%d", step)})
				require.NoError(t, err)
				live = append(live, p.ID)
			} else {
				i := rng.IntN(len(live))
				require.NoError(t, env.svc.Projects.Delete(ctx, live[i]))
				live = append(live[:i], live[i+1:]...)
			}

			got, err := env.svc.Clients.Get(ctx, c.ID)
			require.NoError(t, err)
			byClient, err := env.svc.Projects.ListByClient(ctx, c.ID)
			require.NoError(t, err)
			require.Equal(t, len(live), got.Projects)
			require.Len(t, byClient, len(live))
		}
	})
}

func TestIntegration_ConversationCounterConsistency(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		rng := rand.New(rand.NewPCG(3, 4))

		c, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
		require.NoError(t, err)
		p, err := env.svc.Projects.Create(ctx, project.CreateRequest{ClientID: c.ID, Name: "P"})
		require.NoError(t, err)

		var live []string
		for step := 0; step < 40; step++ {
			if len(live) == 0 || rng.IntN(3) > 0 {
				conv, err := env.svc.Conversations.Create(ctx, conversation.CreateRequest{ProjectID: p.ID})
				require.NoError(t, err)
				live = append(live, conv.ID)
			} else {
				i := rng.IntN(len(live))
				require.NoError(t, env.svc.Conversations.Delete(ctx, live[i]))
				live = append(live[:i], live[i+1:]...)
			}

			got, err := env.svc.Projects.Get(ctx, p.ID)
			require.NoError(t, err)
			require.Equal(t, len(live), got.Conversations)
		}

		got, err := env.svc.Clients.Get(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, len(live), got.Conversations)
	})
}

func TestIntegration_CounterNeverNegative(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, kv.NewMemory(), store.ServiceOptions{})

	c, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		found, err := env.cols.Clients.AdjustProjects(ctx, c.ID, -1)
		require.NoError(t, err)
		require.True(t, found)
	}
	got, err := env.svc.Clients.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Zero(t, got.Projects)
}

func TestIntegration_MessagesAppendInOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		conv, err := env.svc.Conversations.Create(ctx, conversation.CreateRequest{ProjectID: "project_dangling"})
		require.NoError(t, err)

		var want []string
		for i := 0; i < 10; i++ {
			role := conversation.RoleUser
			if i%2 == 1 {
				role = conversation.RoleAssistant
			}
			content := fmt.Sprintf("message %d", i)
			_, err := env.svc.Conversations.AddMessage(ctx, conv.ID, conversation.NewMessage{Role: role, Content: content})
			require.NoError(t, err)
			want = append(want, content)
		}
		_, err = env.svc.Conversations.AddMessage(ctx, "conv_missing", conversation.NewMessage{Role: conversation.RoleUser, Content: "lost"})
		require.ErrorIs(t, err, conversation.ErrConversationNotFound)

		got, err := env.svc.Conversations.Get(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, got.Messages, len(want))
		for i, m := range got.Messages {
			require.Equal(t, want[i], m.Content)
		}
		// The last user message was "message 8"; the assistant reply after it leaves the preview alone.
		require.Equal(t, "message 8", got.Preview)
		require.True(t, !got.UpdatedAt.Before(got.CreatedAt))
	})
}

func TestIntegration_ConcurrentAddMessage(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, b.open(t), store.ServiceOptions{})
			conv, err := env.svc.Conversations.Create(ctx, conversation.CreateRequest{ProjectID: "project_1"})
			require.NoError(t, err)

			const writers = 20
			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := env.svc.Conversations.AddMessage(ctx, conv.ID, conversation.NewMessage{
						Role:    conversation.RoleUser,
						Content: fmt.Sprintf("writer %d", i),
					})
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			got, err := env.svc.Conversations.Get(ctx, conv.ID)
			require.NoError(t, err)
			require.Len(t, got.Messages, writers)
		})
	}
}

func TestIntegration_ConcurrentProjectCreate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		c, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
		require.NoError(t, err)

		const writers = 30
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := env.svc.Projects.Create(ctx, project.CreateRequest{
					ClientID: c.ID,
					Name:     fmt.Sprintf("Workstream %d", i),
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		projects, err := env.svc.Projects.ListByClient(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, projects, writers)

		got, err := env.svc.Clients.Get(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, writers, got.Projects)
	})
}

func TestIntegration_DeleteThenLookup(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		c, err := env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
		require.NoError(t, err)

		require.NoError(t, env.svc.Clients.Delete(ctx, c.ID))
		_, err = env.svc.Clients.Get(ctx, c.ID)
		require.ErrorIs(t, err, client.ErrClientNotFound)
		require.ErrorIs(t, env.svc.Clients.Delete(ctx, c.ID), client.ErrClientNotFound)
	})
}

func TestIntegration_ClientDeletePolicy(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()

	forbid := newTestEnv(t, backing, store.ServiceOptions{DeletePolicy: repository.DeleteForbid})
	c, err := forbid.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
	require.NoError(t, err)
	p, err := forbid.svc.Projects.Create(ctx, project.CreateRequest{ClientID: c.ID, Name: "P"})
	require.NoError(t, err)
	require.ErrorIs(t, forbid.svc.Clients.Delete(ctx, c.ID), client.ErrClientHasProjects)

	orphan := newTestEnv(t, backing, store.ServiceOptions{DeletePolicy: repository.DeleteOrphan})
	require.NoError(t, orphan.svc.Clients.Delete(ctx, c.ID))

	// The orphaned project survives and can still be deleted.
	left, err := orphan.svc.Projects.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, left.ClientID)
	require.NoError(t, orphan.svc.Projects.Delete(ctx, p.ID))
}

func TestIntegration_PackageDeleteGuard(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		pkg, err := env.svc.Packages.Create(ctx, pricing.CreateRequest{Name: "Professional", Price: 299, Active: true})
		require.NoError(t, err)

		b, err := env.svc.Billing.Create(ctx, billing.CreateRequest{ClientID: "client_1", PackageID: pkg.ID})
		require.NoError(t, err)
		require.Equal(t, "Professional", b.PackageName)
		require.ErrorIs(t, env.svc.Packages.Delete(ctx, pkg.ID), pricing.ErrPackageHasActiveClients)

		canceled := billing.StatusCanceled
		_, err = env.svc.Billing.Update(ctx, b.ID, billing.UpdateRequest{Status: &canceled})
		require.NoError(t, err)
		require.NoError(t, env.svc.Packages.Delete(ctx, pkg.ID))

		_, err = env.svc.Packages.Get(ctx, pkg.ID)
		require.ErrorIs(t, err, pricing.ErrPackageNotFound)
	})
}

func TestIntegration_RoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		ctx := context.Background()
		created, err := env.svc.Projects.Create(ctx, project.CreateRequest{
			ClientID:  "client_1",
			Name:      "Expansion",
			Type:      "Market Research",
			Status:    project.StatusInProgress,
			Progress:  35,
			Members:   4,
			StartDate: "Jan 2026",
			DueDate:   "Jun 2026",
		})
		require.NoError(t, err)

		got, err := env.svc.Projects.Get(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, created.CreatedAt.Equal(got.CreatedAt))
		got.CreatedAt = created.CreatedAt
		require.Equal(t, *created, *got)
	})
}

func TestIntegration_AgentUsage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, kv.NewMemory(), store.ServiceOptions{})

	a, err := env.svc.Agents.Create(ctx, agent.CreateRequest{Name: "Strategy Advisor", SystemPrompt: "You advise on strategy."})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = env.svc.Agents.IncrementUsage(ctx, a.ID)
		require.NoError(t, err)
	}
	got, err := env.svc.Agents.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.UsageCount)
}

func TestIntegration_SettingsSecretRoundTrip(t *testing.T) {
	ctx := context.Background()
	cipher, err := crypto.NewManagerFromBase64("k1", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	require.NoError(t, err)
	backing := kv.NewMemory()
	env := newTestEnv(t, backing, store.ServiceOptions{Cipher: cipher})

	defaults, err := env.svc.Settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settings.Defaults(), defaults)

	secret := "sk_live_51Habcdefghijklmnop"
	_, err = env.svc.Settings.Update(ctx, settings.UpdateRequest{StripeSecretKey: &secret})
	require.NoError(t, err)

	raw, ok, err := backing.Get(ctx, store.KeyPlatformSettings)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, raw, secret)

	got, err := env.svc.Settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, secret, got.StripeSecretKey)
	require.Equal(t, defaults.SiteName, got.SiteName)
}

func TestIntegration_CorruptSlot(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	env := newTestEnv(t, backing, store.ServiceOptions{})
	require.NoError(t, backing.Set(ctx, store.KeyClients, "{not an array"))

	list, err := env.svc.Clients.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = env.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
	require.ErrorIs(t, err, docstore.ErrCorrupt)

	raw, _, _ := backing.Get(ctx, store.KeyClients)
	require.Equal(t, "{not an array", raw)
}

func TestIntegration_NamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	a := newTestEnv(t, kv.Namespace(backing, "tenant-a"), store.ServiceOptions{})
	b := newTestEnv(t, kv.Namespace(backing, "tenant-b"), store.ServiceOptions{})

	_, err := a.svc.Clients.Create(ctx, client.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	listA, _ := a.svc.Clients.List(ctx)
	listB, _ := b.svc.Clients.List(ctx)
	require.Len(t, listA, 1)
	require.Empty(t, listB)
}
