package mcp

import (
	"context"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
)

// getSessionID extracts session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// sessionMiddleware extracts session ID from Mcp-Session-Id header (HTTP) or metadata (stdio).
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get("Mcp-Session-Id")
			}

			// Some notifications (like "initialized") have nil params.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["session_id"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			}

			return next(ctx, method, req)
		}
	}
}

// maintenanceMiddleware rejects mutating tool calls while maintenance mode is on.
// Reads and update_settings (to switch maintenance off) still go through.
func maintenanceMiddleware(svc SettingsService, logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			call, ok := req.(*sdkmcp.CallToolRequest)
			if method != "tools/call" || !ok || call.Params == nil || allowedInMaintenance(call.Params.Name) {
				return next(ctx, method, req)
			}
			current, err := svc.Get(ctx)
			if err != nil {
				logger.Warn("cannot read maintenance flag", "error", err)
				return next(ctx, method, req)
			}
			if current.MaintenanceMode {
				logger.Info("tool call rejected", "tool", call.Params.Name, "reason", "maintenance")
				return errorResult(ErrMaintenance), nil
			}
			return next(ctx, method, req)
		}
	}
}

// allowedInMaintenance admits reads and the settings write that ends maintenance.
func allowedInMaintenance(name string) bool {
	return isReadOnlyTool(name) || name == "update_settings"
}

func isReadOnlyTool(name string) bool {
	return strings.HasPrefix(name, "list_") || strings.HasPrefix(name, "get_")
}
