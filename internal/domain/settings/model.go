package settings

import (
	"slices"
	"time"
)

// PlatformSettings is the single platform-wide configuration record.
type PlatformSettings struct {
	SiteName             string    `json:"siteName"`
	SupportEmail         string    `json:"supportEmail"`
	MaxUploadSizeMB      int       `json:"maxUploadSize"`
	AllowedFileTypes     []string  `json:"allowedFileTypes"`
	MaintenanceMode      bool      `json:"maintenanceMode"`
	StripePublishableKey string    `json:"stripePublishableKey"`
	StripeSecretKey      string    `json:"stripeSecretKey"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Defaults returns the settings used before any update has been saved.
func Defaults() PlatformSettings {
	return PlatformSettings{
		SiteName:         "StratDesk",
		SupportEmail:     "support@stratdesk.io",
		MaxUploadSizeMB:  10,
		AllowedFileTypes: []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".csv"},
	}
}

// Redacted returns a copy safe to hand to clients: the secret key keeps only its
// prefix and last four characters.
func (p PlatformSettings) Redacted() PlatformSettings {
	out := p
	out.AllowedFileTypes = slices.Clone(p.AllowedFileTypes)
	out.StripeSecretKey = maskSecret(p.StripeSecretKey)
	return out
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 12:
		return "****"
	default:
		return s[:8] + "****" + s[len(s)-4:]
	}
}
