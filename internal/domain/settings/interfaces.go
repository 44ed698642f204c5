package settings

import "context"

// Repository persists the settings singleton. Get returns Defaults when nothing is stored.
type Repository interface {
	Get(ctx context.Context) (PlatformSettings, error)
	Update(ctx context.Context, fn func(*PlatformSettings) error) (PlatformSettings, error)
}

// SecretCipher seals secret values at rest.
type SecretCipher interface {
	SealString(value, aad string) (string, error)
	OpenString(raw, aad string) (string, error)
}
