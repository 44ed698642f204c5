package conversation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/project"
	"github.com/rpggio/stratdesk/internal/repository"
	"github.com/rpggio/stratdesk/internal/repository/mocks"
)

const longPrompt = "Help me analyze the target market for our new healthcare product and its growth potential over the next decade"

func TestPreview(t *testing.T) {
	require.Equal(t, "short", conversation.Preview("short"))

	exact := strings.Repeat("a", 60)
	require.Equal(t, exact, conversation.Preview(exact))

	require.Equal(t, longPrompt[:60]+"...", conversation.Preview(longPrompt))

	// Counts characters, not bytes.
	accented := strings.Repeat("é", 61)
	require.Equal(t, strings.Repeat("é", 60)+"...", conversation.Preview(accented))
}

func TestConversationService_CreateFillsFromProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*conversation.Conversation")).Return(nil)
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "project_1").
		Return(&project.Project{ID: "project_1", Name: "Market entry", ClientID: "client_1", ClientName: "Acme"}, nil)
	projects.On("AdjustConversations", ctx, "project_1", 1).Return(true, nil)
	clients := &mocks.ClientRepository{}
	clients.On("AdjustConversations", ctx, "client_1", 1).Return(true, nil)

	svc := conversation.NewService(repo, projects, clients, nil)
	conv, err := svc.Create(ctx, conversation.CreateRequest{ProjectID: "project_1", AgentID: "agent_1"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(conv.ID, "conv_"))
	require.Equal(t, "Market entry", conv.ProjectName)
	require.Equal(t, "client_1", conv.ClientID)
	require.Equal(t, "Acme", conv.ClientName)
	require.Equal(t, conversation.DefaultTitle, conv.Title)
	require.Empty(t, conv.Messages)
	require.NotNil(t, conv.Messages)
	projects.AssertExpectations(t)
	clients.AssertExpectations(t)
}

func TestConversationService_CreateRequiresProject(t *testing.T) {
	svc := conversation.NewService(&mocks.ConversationRepository{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), conversation.CreateRequest{Title: "x"})
	require.ErrorIs(t, err, conversation.ErrInvalidInput)
}

func TestConversationService_AddMessagePreview(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Update", ctx, "conv_1", mock.Anything).
		Return(&conversation.Conversation{ID: "conv_1", Preview: "earlier"}, nil)

	svc := conversation.NewService(repo, nil, nil, nil)

	msg, err := svc.AddMessage(ctx, "conv_1", conversation.NewMessage{Role: conversation.RoleUser, Content: longPrompt})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(msg.ID, "msg_"))
	require.False(t, msg.Timestamp.IsZero())
	require.Equal(t, longPrompt, msg.Content)

	// The mock applies the mutation to a copy; capture it to inspect the result.
	var applied conversation.Conversation
	repo.ExpectedCalls = nil
	repo.On("Update", ctx, "conv_1", mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(*conversation.Conversation) error)
			applied = conversation.Conversation{ID: "conv_1", Preview: "earlier"}
			require.NoError(t, fn(&applied))
		}).
		Return(&conversation.Conversation{ID: "conv_1", Preview: "earlier"}, nil)

	_, err = svc.AddMessage(ctx, "conv_1", conversation.NewMessage{Role: conversation.RoleAssistant, Content: "Sure."})
	require.NoError(t, err)
	require.Equal(t, "earlier", applied.Preview)
	require.Len(t, applied.Messages, 1)
	require.Equal(t, conversation.JustNow, applied.Timestamp)
	require.False(t, applied.UpdatedAt.IsZero())

	_, err = svc.AddMessage(ctx, "conv_1", conversation.NewMessage{Role: conversation.RoleUser, Content: longPrompt})
	require.NoError(t, err)
	require.Equal(t, longPrompt[:60]+"...", applied.Preview)
}

func TestConversationService_AddMessageValidation(t *testing.T) {
	ctx := context.Background()
	svc := conversation.NewService(&mocks.ConversationRepository{}, nil, nil, nil)

	_, err := svc.AddMessage(ctx, "conv_1", conversation.NewMessage{Role: "system", Content: "x"})
	require.ErrorIs(t, err, conversation.ErrInvalidInput)
}

func TestConversationService_AddExchangeEmptyReply(t *testing.T) {
	ctx := context.Background()
	var applied conversation.Conversation
	repo := &mocks.ConversationRepository{}
	repo.On("Update", ctx, "conv_1", mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(*conversation.Conversation) error)
			applied = conversation.Conversation{ID: "conv_1"}
			require.NoError(t, fn(&applied))
		}).
		Return(&conversation.Conversation{ID: "conv_1"}, nil)

	svc := conversation.NewService(repo, nil, nil, nil)
	added, err := svc.AddExchange(ctx, "conv_1", "Summarize the call", "")
	require.NoError(t, err)
	require.Len(t, added, 2)
	require.Equal(t, "", added[1].Content)
	require.Len(t, applied.Messages, 2)
	require.Equal(t, "Summarize the call", applied.Preview)
}

func TestConversationService_AddMessageNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Update", ctx, "conv_x", mock.Anything).Return(nil, repository.ErrNotFound)

	svc := conversation.NewService(repo, nil, nil, nil)
	_, err := svc.AddMessage(ctx, "conv_x", conversation.NewMessage{Role: conversation.RoleUser, Content: "hi"})
	require.ErrorIs(t, err, conversation.ErrConversationNotFound)
}

func TestConversationService_AddExchange(t *testing.T) {
	ctx := context.Background()
	var applied conversation.Conversation
	repo := &mocks.ConversationRepository{}
	repo.On("Update", ctx, "conv_1", mock.Anything).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(*conversation.Conversation) error)
			applied = conversation.Conversation{ID: "conv_1"}
			require.NoError(t, fn(&applied))
		}).
		Return(&conversation.Conversation{ID: "conv_1"}, nil)

	svc := conversation.NewService(repo, nil, nil, nil)
	msgs, err := svc.AddExchange(ctx, "conv_1", "What is our TAM?", "Roughly 4B USD.")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, conversation.RoleUser, applied.Messages[0].Role)
	require.Equal(t, conversation.RoleAssistant, applied.Messages[1].Role)
	require.Equal(t, "What is our TAM?", applied.Preview)
}

func TestConversationService_History(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Get", ctx, "conv_1").Return(&conversation.Conversation{
		ID: "conv_1",
		Messages: []conversation.Message{
			{ID: "msg_1", Role: conversation.RoleUser, Content: "q"},
			{ID: "msg_2", Role: conversation.RoleAssistant, Content: "a"},
		},
	}, nil)

	svc := conversation.NewService(repo, nil, nil, nil)
	turns, err := svc.History(ctx, "conv_1")
	require.NoError(t, err)
	require.Equal(t, []conversation.Turn{
		{Role: conversation.RoleUser, Content: "q"},
		{Role: conversation.RoleAssistant, Content: "a"},
	}, turns)
}

func TestConversationService_DeleteDecrementsParents(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Delete", ctx, "conv_1").
		Return(&conversation.Conversation{ID: "conv_1", ProjectID: "project_1", ClientID: "client_1"}, nil)
	projects := &mocks.ProjectRepository{}
	projects.On("AdjustConversations", ctx, "project_1", -1).Return(true, nil)
	clients := &mocks.ClientRepository{}
	clients.On("AdjustConversations", ctx, "client_1", -1).Return(true, nil)

	svc := conversation.NewService(repo, projects, clients, nil)
	require.NoError(t, svc.Delete(ctx, "conv_1"))
	projects.AssertExpectations(t)
	clients.AssertExpectations(t)

}

func TestConversationService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ConversationRepository{}
	repo.On("Delete", ctx, "conv_x").Return(nil, repository.ErrNotFound)

	svc := conversation.NewService(repo, nil, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, "conv_x"), conversation.ErrConversationNotFound)
}
