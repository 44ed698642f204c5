package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/project"
)

// toolRegistry carries what every tool handler needs besides its service.
type toolRegistry struct {
	server *sdkmcp.Server
	logger *slog.Logger
}

// registerTools adds one tool per service operation.
func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	reg := &toolRegistry{server: server, logger: logger}
	if svc.Clients != nil {
		registerClientTools(reg, svc.Clients)
	}
	if svc.Projects != nil {
		registerProjectTools(reg, svc.Projects)
	}
	if svc.Conversations != nil {
		registerConversationTools(reg, svc)
	}
	if svc.Packages != nil {
		registerPackageTools(reg, svc.Packages)
	}
	if svc.Billing != nil {
		registerBillingTools(reg, svc.Billing)
	}
	if svc.Agents != nil {
		registerAgentTools(reg, svc.Agents)
	}
	if svc.Settings != nil {
		registerSettingsTools(reg, svc.Settings)
	}
}

// addTool registers run as a tool whose result is rendered as indented JSON text.
// Domain errors become tool errors carrying their code. Anything else is logged and
// reported as INTERNAL so backend details stay on the server.
func addTool[In any](reg *toolRegistry, name, description string, run func(context.Context, In) (any, error)) {
	tool := &sdkmcp.Tool{
		Name:        name,
		Description: description,
		Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: isReadOnlyTool(name)},
	}
	sdkmcp.AddTool(reg.server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		v, err := run(ctx, in)
		if err != nil {
			if MapError(err) == nil {
				reg.logger.Error("tool failed", "tool", name, "session_id", getSessionID(ctx), "error", err)
			}
			return errorResult(err), nil, nil
		}
		return jsonResult(v)
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func deleted(id string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return DeleteResponse{ID: id, Deleted: true}, nil
}

func registerClientTools(reg *toolRegistry, clients ClientService) {
	addTool(reg, "list_clients", "List every client with its project and conversation counts",
		func(ctx context.Context, _ NoParams) (any, error) {
			return clients.List(ctx)
		})
	addTool(reg, "get_client", "Get a client by ID",
		func(ctx context.Context, in IDParams) (any, error) {
			return clients.Get(ctx, in.ID)
		})
	addTool(reg, "create_client", "Create a client",
		func(ctx context.Context, in CreateClientParams) (any, error) {
			return clients.Create(ctx, client.CreateRequest{
				Name:        in.Name,
				Industry:    in.Industry,
				Avatar:      in.Avatar,
				AvatarColor: in.AvatarColor,
			})
		})
	addTool(reg, "update_client", "Update a client's fields; omitted fields are unchanged",
		func(ctx context.Context, in UpdateClientParams) (any, error) {
			return clients.Update(ctx, in.ID, client.UpdateRequest{
				Name:        in.Name,
				Industry:    in.Industry,
				Avatar:      in.Avatar,
				AvatarColor: in.AvatarColor,
			})
		})
	addTool(reg, "delete_client", "Delete a client. Its projects are not deleted",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, clients.Delete(ctx, in.ID))
		})
}

func registerProjectTools(reg *toolRegistry, projects ProjectService) {
	addTool(reg, "list_projects", "List projects, optionally for one client",
		func(ctx context.Context, in ListProjectsParams) (any, error) {
			if in.ClientID != "" {
				return projects.ListByClient(ctx, in.ClientID)
			}
			return projects.List(ctx)
		})
	addTool(reg, "get_project", "Get a project by ID",
		func(ctx context.Context, in IDParams) (any, error) {
			return projects.Get(ctx, in.ID)
		})
	addTool(reg, "create_project", "Create a project under a client and bump the client's project count",
		func(ctx context.Context, in CreateProjectParams) (any, error) {
			return projects.Create(ctx, project.CreateRequest{
				ClientID:  in.ClientID,
				Name:      in.Name,
				Type:      in.Type,
				Status:    in.Status,
				Progress:  in.Progress,
				Members:   in.Members,
				StartDate: in.StartDate,
				DueDate:   in.DueDate,
			})
		})
	addTool(reg, "update_project", "Update a project's fields; the owning client cannot change",
		func(ctx context.Context, in UpdateProjectParams) (any, error) {
			return projects.Update(ctx, in.ID, project.UpdateRequest{
				Name:      in.Name,
				Type:      in.Type,
				Status:    in.Status,
				Progress:  in.Progress,
				Members:   in.Members,
				StartDate: in.StartDate,
				DueDate:   in.DueDate,
			})
		})
	addTool(reg, "delete_project", "Delete a project and decrement the client's project count",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, projects.Delete(ctx, in.ID))
		})
}

func registerConversationTools(reg *toolRegistry, svc Services) {
	convs, agents := svc.Conversations, svc.Agents
	addTool(reg, "list_conversations", "List conversations, optionally for one project",
		func(ctx context.Context, in ListConversationsParams) (any, error) {
			if in.ProjectID != "" {
				return convs.ListByProject(ctx, in.ProjectID)
			}
			return convs.List(ctx)
		})
	addTool(reg, "get_conversation", "Get a conversation with its messages",
		func(ctx context.Context, in IDParams) (any, error) {
			return convs.Get(ctx, in.ID)
		})
	addTool(reg, "create_conversation", "Start a conversation in a project; an attached agent's usage count goes up by one",
		func(ctx context.Context, in CreateConversationParams) (any, error) {
			req := conversation.CreateRequest{ProjectID: in.ProjectID, Title: in.Title, AgentID: in.AgentID}
			return svc.StartConversation(ctx, req, reg.logger)
		})
	addTool(reg, "update_conversation", "Rename a conversation or switch its agent",
		func(ctx context.Context, in UpdateConversationParams) (any, error) {
			req := conversation.UpdateRequest{Title: in.Title, AgentID: in.AgentID}
			if in.AgentID != nil && *in.AgentID != "" && agents != nil {
				a, err := agents.Get(ctx, *in.AgentID)
				if err != nil {
					return nil, err
				}
				req.AgentName, req.AgentAvatar, req.AgentColor = &a.Name, &a.Avatar, &a.Color
			}
			return convs.Update(ctx, in.ID, req)
		})
	addTool(reg, "delete_conversation", "Delete a conversation and decrement its project's count",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleted(in.ID, convs.Delete(ctx, in.ID))
		})
	addTool(reg, "add_message", "Append a message to a conversation; user messages update the preview",
		func(ctx context.Context, in AddMessageParams) (any, error) {
			msg, err := convs.AddMessage(ctx, in.ConversationID, conversation.NewMessage{Role: in.Role, Content: in.Content})
			if err != nil {
				return nil, err
			}
			conv, err := convs.Get(ctx, in.ConversationID)
			if err != nil {
				return nil, err
			}
			return AddMessageResponse{Message: *msg, Preview: conv.Preview}, nil
		})
	addTool(reg, "add_exchange", "Append a user message and the assistant reply in one write",
		func(ctx context.Context, in AddExchangeParams) (any, error) {
			return convs.AddExchange(ctx, in.ConversationID, in.UserContent, in.AssistantContent)
		})
	addTool(reg, "get_conversation_history", "Get a conversation's messages as role/content turns, oldest first",
		func(ctx context.Context, in IDParams) (any, error) {
			return convs.History(ctx, in.ID)
		})
}
