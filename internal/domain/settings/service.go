package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// secretAAD binds the sealed secret key to its slot.
const secretAAD = "admin_platform_settings.stripeSecretKey"

// Service reads and updates the platform settings.
type Service struct {
	repo   Repository
	cipher SecretCipher
	logger *slog.Logger
}

// NewService creates a new settings service. With a nil cipher the secret key is
// stored as given.
func NewService(repo Repository, cipher SecretCipher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, cipher: cipher, logger: logger}
}

// UpdateRequest carries the fields to change; nil fields are left as is.
type UpdateRequest struct {
	SiteName             *string
	SupportEmail         *string
	MaxUploadSizeMB      *int
	AllowedFileTypes     []string
	MaintenanceMode      *bool
	StripePublishableKey *string
	StripeSecretKey      *string
}

// Get returns the current settings with the secret key in plaintext.
func (s *Service) Get(ctx context.Context) (PlatformSettings, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return PlatformSettings{}, fmt.Errorf("getting settings: %w", err)
	}
	return s.open(p), nil
}

// Update merges the set fields of req and touches UpdatedAt.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (PlatformSettings, error) {
	if req.SiteName != nil && strings.TrimSpace(*req.SiteName) == "" {
		return PlatformSettings{}, fmt.Errorf("%w: site_name cannot be empty", ErrInvalidInput)
	}
	if req.SupportEmail != nil && *req.SupportEmail != "" && !strings.Contains(*req.SupportEmail, "@") {
		return PlatformSettings{}, fmt.Errorf("%w: support_email is not an email address", ErrInvalidInput)
	}
	if req.MaxUploadSizeMB != nil && *req.MaxUploadSizeMB <= 0 {
		return PlatformSettings{}, fmt.Errorf("%w: max_upload_size must be positive", ErrInvalidInput)
	}

	var fileTypes []string
	if req.AllowedFileTypes != nil {
		fileTypes = make([]string, 0, len(req.AllowedFileTypes))
		for _, t := range req.AllowedFileTypes {
			if t = normalizeExt(t); t != "" {
				fileTypes = append(fileTypes, t)
			}
		}
	}

	var sealed *string
	if req.StripeSecretKey != nil {
		v, err := s.seal(*req.StripeSecretKey)
		if err != nil {
			return PlatformSettings{}, err
		}
		sealed = &v
	}

	p, err := s.repo.Update(ctx, func(p *PlatformSettings) error {
		if req.SiteName != nil {
			p.SiteName = strings.TrimSpace(*req.SiteName)
		}
		if req.SupportEmail != nil {
			p.SupportEmail = *req.SupportEmail
		}
		if req.MaxUploadSizeMB != nil {
			p.MaxUploadSizeMB = *req.MaxUploadSizeMB
		}
		if fileTypes != nil {
			p.AllowedFileTypes = fileTypes
		}
		if req.MaintenanceMode != nil {
			p.MaintenanceMode = *req.MaintenanceMode
		}
		if req.StripePublishableKey != nil {
			p.StripePublishableKey = *req.StripePublishableKey
		}
		if sealed != nil {
			p.StripeSecretKey = *sealed
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return PlatformSettings{}, fmt.Errorf("updating settings: %w", err)
	}
	if req.MaintenanceMode != nil {
		s.logger.Info("maintenance mode changed", "enabled", *req.MaintenanceMode)
	}
	return s.open(p), nil
}

func (s *Service) seal(secret string) (string, error) {
	if s.cipher == nil {
		return secret, nil
	}
	v, err := s.cipher.SealString(secret, secretAAD)
	if err != nil {
		return "", fmt.Errorf("sealing secret key: %w", err)
	}
	return v, nil
}

// open decrypts the secret key. A key that cannot be opened is blanked so sealed bytes
// never leave the service.
func (s *Service) open(p PlatformSettings) PlatformSettings {
	if s.cipher == nil || p.StripeSecretKey == "" {
		return p
	}
	plain, err := s.cipher.OpenString(p.StripeSecretKey, secretAAD)
	if err != nil {
		s.logger.Warn("cannot open stored secret key", "error", err)
		p.StripeSecretKey = ""
		return p
	}
	p.StripeSecretKey = plain
	return p
}

func normalizeExt(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return ""
	}
	if !strings.HasPrefix(t, ".") {
		t = "." + t
	}
	return t
}
