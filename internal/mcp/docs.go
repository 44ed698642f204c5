package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `stratdesk stores a consulting workspace: Clients → Projects → Conversations (with Messages),
plus admin data: pricing packages, client billing, agent personas and platform settings.

Rules of engagement:
1) Orient: list_clients, then list_projects with client_id, then list_conversations with project_id.
2) Counters (client.projects, client.conversations, project.conversations) are maintained by the
   create/delete tools. Never set them by hand.
3) add_message appends; messages are never edited. Only user messages change the preview.
4) Deleting a client or project with children fails by default; delete the children first.
5) delete_package fails while an active billing record uses the package.
6) While maintenance mode is on, only list_*, get_* and update_settings are accepted.

Docs:
- stratdesk://docs/index
- stratdesk://docs/model
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "stratdesk://docs/index",
		Name:        "docs_index",
		Title:       "stratdesk docs index",
		Description: "Entry point: which tools exist and how they relate.",
		Content: `# stratdesk: Agent Docs Index

## Workspace tools

- ` + "`list_clients` / `get_client` / `create_client` / `update_client` / `delete_client`" + `
- ` + "`list_projects` / `get_project` / `create_project` / `update_project` / `delete_project`" + `
- ` + "`list_conversations` / `get_conversation` / `create_conversation` / `update_conversation` / `delete_conversation`" + `
- ` + "`add_message`" + ` appends one message and returns the conversation's preview.

## Admin tools

- ` + "`list_packages` / `create_package` / `update_package` / `delete_package`" + `
- ` + "`list_billing` / `create_billing` / `update_billing` / `delete_billing`" + `
- ` + "`list_agents` / `create_agent` / `update_agent` / `delete_agent` / `increment_agent_usage`" + `
- ` + "`get_settings` / `update_settings`" + `

Errors come back as tool errors whose text is JSON: ` + "`{\"code\": \"PACKAGE_IN_USE\", \"message\": ...}`" + `.
`,
	},
	{
		URI:         "stratdesk://docs/model",
		Name:        "docs_model",
		Title:       "stratdesk data model",
		Description: "Entities, derived fields and invariants.",
		Content: `# Data model

## Client
id, name, industry, avatar, avatarColor, projects, conversations, lastActive, createdAt.
` + "`projects`" + ` counts live projects with this clientId. ` + "`conversations`" + ` counts live
conversations with this clientId. Neither goes below zero.

## Project
id, clientId, clientName, name, type, status (active | in-progress | planning | completed),
progress (0-100), conversations, members, startDate, dueDate, lastActive, createdAt.
Creating a conversation sets lastActive to "Just now".

## Conversation
id, projectId, projectName, clientId, clientName, agent fields, title, preview, timestamp,
messages, createdAt, updatedAt. The preview is the first 60 characters of the latest user
message, followed by "..." when cut.

## Admin
- Pricing package: price, interval (month | year), features, limits (-1 is unlimited).
- Client billing: client, package, status (active | past_due | canceled | trialing | incomplete),
  amount, current period.
- Agent: persona, system prompt, model and tuning, usageCount.
- Settings: a single record. The billing secret key is stored encrypted and shown redacted.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
