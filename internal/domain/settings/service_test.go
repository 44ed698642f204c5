package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/stratdesk/internal/crypto"
	"github.com/rpggio/stratdesk/internal/domain/settings"
	"github.com/rpggio/stratdesk/internal/repository/mocks"
)

const testKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func TestSettingsService_GetDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingsRepository{}
	repo.On("Get", ctx).Return(settings.Defaults(), nil)

	svc := settings.NewService(repo, nil, nil)
	p, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, settings.Defaults(), p)
}

func TestSettingsService_UpdateMerges(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingsRepository{}
	repo.On("Update", ctx, mock.Anything).Return(settings.Defaults(), nil)

	svc := settings.NewService(repo, nil, nil)
	on := true
	p, err := svc.Update(ctx, settings.UpdateRequest{
		MaintenanceMode:  &on,
		AllowedFileTypes: []string{"PDF", ".md", " "},
	})
	require.NoError(t, err)
	require.True(t, p.MaintenanceMode)
	require.Equal(t, []string{".pdf", ".md"}, p.AllowedFileTypes)
	require.Equal(t, settings.Defaults().SiteName, p.SiteName)
	require.False(t, p.UpdatedAt.IsZero())
}

func TestSettingsService_UpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc := settings.NewService(&mocks.SettingsRepository{}, nil, nil)

	zero := 0
	_, err := svc.Update(ctx, settings.UpdateRequest{MaxUploadSizeMB: &zero})
	require.ErrorIs(t, err, settings.ErrInvalidInput)

	email := "nobody"
	_, err = svc.Update(ctx, settings.UpdateRequest{SupportEmail: &email})
	require.ErrorIs(t, err, settings.ErrInvalidInput)
}

func TestSettingsService_SecretKeySealedAtRest(t *testing.T) {
	ctx := context.Background()
	cipher, err := crypto.NewManagerFromBase64("k1", testKey)
	require.NoError(t, err)

	var stored settings.PlatformSettings
	repo := &mocks.SettingsRepository{}
	repo.On("Update", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(*settings.PlatformSettings) error)
			stored = settings.Defaults()
			require.NoError(t, fn(&stored))
		}).
		Return(settings.Defaults(), nil)

	svc := settings.NewService(repo, cipher, nil)
	secret := "sk_live_51Habcdefghijklmnop"
	p, err := svc.Update(ctx, settings.UpdateRequest{StripeSecretKey: &secret})
	require.NoError(t, err)
	require.Equal(t, secret, p.StripeSecretKey)
	require.True(t, crypto.IsSealed(stored.StripeSecretKey))
	require.NotContains(t, stored.StripeSecretKey, "sk_live")

	repo.On("Get", ctx).Return(stored, nil)
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, secret, got.StripeSecretKey)
}

func TestSettingsService_UnreadableSecretIsBlanked(t *testing.T) {
	ctx := context.Background()
	cipher, err := crypto.NewManagerFromBase64("k1", testKey)
	require.NoError(t, err)

	stored := settings.Defaults()
	stored.StripeSecretKey = "enc:not-an-envelope"
	repo := &mocks.SettingsRepository{}
	repo.On("Get", ctx).Return(stored, nil)

	svc := settings.NewService(repo, cipher, nil)
	p, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, p.StripeSecretKey)
}

func TestRedacted(t *testing.T) {
	p := settings.Defaults()
	p.StripeSecretKey = "sk_live_51Habcdefghijklmnop"
	r := p.Redacted()
	require.Equal(t, "sk_live_****mnop", r.StripeSecretKey)
	require.Equal(t, "sk_live_51Habcdefghijklmnop", p.StripeSecretKey)

	p.StripeSecretKey = "short"
	require.Equal(t, "****", p.Redacted().StripeSecretKey)
}
