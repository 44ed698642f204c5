package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stratdesk/internal/docstore"
	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

// ErrMaintenance is returned for writes while the platform is in maintenance mode.
var ErrMaintenance = errors.New("platform is in maintenance mode")

// APIError represents an MCP error response. Status is the matching HTTP status for
// the REST surface.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	Status       int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to API error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrMaintenance):
		return &APIError{Code: "MAINTENANCE", Message: err.Error(), RecoveryHint: "Retry after maintenance mode is switched off", Status: http.StatusServiceUnavailable}
	case errors.Is(err, client.ErrClientNotFound):
		return notFound("CLIENT_NOT_FOUND", err)
	case errors.Is(err, project.ErrProjectNotFound):
		return notFound("PROJECT_NOT_FOUND", err)
	case errors.Is(err, conversation.ErrConversationNotFound):
		return notFound("CONVERSATION_NOT_FOUND", err)
	case errors.Is(err, pricing.ErrPackageNotFound):
		return notFound("PACKAGE_NOT_FOUND", err)
	case errors.Is(err, billing.ErrBillingNotFound):
		return notFound("BILLING_NOT_FOUND", err)
	case errors.Is(err, agent.ErrAgentNotFound):
		return notFound("AGENT_NOT_FOUND", err)
	case errors.Is(err, client.ErrClientHasProjects):
		return &APIError{Code: "CLIENT_HAS_PROJECTS", Message: err.Error(), RecoveryHint: "Delete or move the client's projects first", Status: http.StatusConflict}
	case errors.Is(err, project.ErrProjectHasConversations):
		return &APIError{Code: "PROJECT_HAS_CONVERSATIONS", Message: err.Error(), RecoveryHint: "Delete the project's conversations first", Status: http.StatusConflict}
	case errors.Is(err, pricing.ErrPackageHasActiveClients):
		return &APIError{Code: "PACKAGE_IN_USE", Message: err.Error(), RecoveryHint: "Cancel or move active billing records first", Status: http.StatusConflict}
	case errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, conversation.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, billing.ErrInvalidInput),
		errors.Is(err, agent.ErrInvalidInput),
		errors.Is(err, settings.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), Status: http.StatusBadRequest}
	case errors.Is(err, docstore.ErrCorrupt):
		return &APIError{Code: "STORE_CORRUPT", Message: err.Error(), RecoveryHint: "Inspect the stored collection; it was left untouched", Status: http.StatusInternalServerError}
	default:
		return nil
	}
}

func notFound(code string, err error) *APIError {
	return &APIError{Code: code, Message: err.Error(), RecoveryHint: "Check ID spelling", Status: http.StatusNotFound}
}

// internalError is what tool clients see for errors MapError does not know.
var internalError = &APIError{Code: "INTERNAL", Message: "internal error", Status: http.StatusInternalServerError}

// errorResult renders err as a tool error carrying its APIError as JSON.
func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = internalError
	}
	text := apiErr.Code
	if data, mErr := json.Marshal(apiErr); mErr == nil {
		text = string(data)
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
