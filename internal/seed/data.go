package seed

import (
	"time"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/project"
)

// epoch anchors every seeded timestamp so repeated runs produce identical data.
var epoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func at(days int, hours int) time.Time {
	return epoch.Add(time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour)
}

// Clients are seeded with zero counters; Main derives them from the seeded children.
func Clients() []client.Client {
	return []client.Client{
		{
			ID:          "client_1",
			Name:        "Northwind Health",
			Industry:    "Healthcare",
			Avatar:      "NH",
			AvatarColor: "#3B82F6",
			LastActive:  "2 hours ago",
			CreatedAt:   at(0, 0),
		},
		{
			ID:          "client_2",
			Name:        "Meridian Capital",
			Industry:    "Financial Services",
			Avatar:      "MC",
			AvatarColor: "#10B981",
			LastActive:  "Yesterday",
			CreatedAt:   at(1, 0),
		},
		{
			ID:          "client_3",
			Name:        "Atlas Logistics",
			Industry:    "Transportation",
			Avatar:      "AL",
			AvatarColor: "#F59E0B",
			LastActive:  "3 days ago",
			CreatedAt:   at(2, 0),
		},
	}
}

func Projects() []project.Project {
	return []project.Project{
		{
			ID:         "project_1",
			ClientID:   "client_1",
			ClientName: "Northwind Health",
			Name:       "Market Entry Strategy",
			Type:       "Market Research",
			Status:     project.StatusInProgress,
			Progress:   65,
			Members:    4,
			StartDate:  "Jan 2026",
			DueDate:    "Apr 2026",
			LastActive: "2 hours ago",
			CreatedAt:  at(0, 1),
		},
		{
			ID:         "project_2",
			ClientID:   "client_1",
			ClientName: "Northwind Health",
			Name:       "Digital Transformation Roadmap",
			Type:       "Digital Strategy",
			Status:     project.StatusPlanning,
			Progress:   15,
			Members:    3,
			StartDate:  "Feb 2026",
			DueDate:    "Jul 2026",
			LastActive: "Yesterday",
			CreatedAt:  at(0, 2),
		},
		{
			ID:         "project_3",
			ClientID:   "client_2",
			ClientName: "Meridian Capital",
			Name:       "Portfolio Risk Review",
			Type:       "Risk Assessment",
			Status:     project.StatusActive,
			Progress:   40,
			Members:    5,
			StartDate:  "Dec 2025",
			DueDate:    "Mar 2026",
			LastActive: "Yesterday",
			CreatedAt:  at(1, 1),
		},
		{
			ID:         "project_4",
			ClientID:   "client_3",
			ClientName: "Atlas Logistics",
			Name:       "Supply Chain Optimization",
			Type:       "Operations",
			Status:     project.StatusCompleted,
			Progress:   100,
			Members:    2,
			StartDate:  "Sep 2025",
			DueDate:    "Dec 2025",
			LastActive: "3 days ago",
			CreatedAt:  at(2, 1),
		},
	}
}

func Conversations() []conversation.Conversation {
	convs := []conversation.Conversation{
		{
			ID:          "conv_1",
			ProjectID:   "project_1",
			ProjectName: "Market Entry Strategy",
			ClientID:    "client_1",
			ClientName:  "Northwind Health",
			AgentID:     "agent_1",
			AgentName:   "Strategy Advisor",
			AgentAvatar: "SA",
			AgentColor:  "#6366F1",
			Title:       "Target market sizing",
			Timestamp:   "2 hours ago",
			Messages: []conversation.Message{
				{ID: "msg_1", Role: conversation.RoleUser, Content: "What is the addressable market for outpatient telehealth in the Midwest?", Timestamp: at(3, 0)},
				{ID: "msg_2", Role: conversation.RoleAssistant, Content: "Start from regional outpatient visit volume, apply the telehealth adoption rate, then segment by payer mix.", Timestamp: at(3, 1)},
			},
			CreatedAt: at(3, 0),
			UpdatedAt: at(3, 1),
		},
		{
			ID:          "conv_2",
			ProjectID:   "project_1",
			ProjectName: "Market Entry Strategy",
			ClientID:    "client_1",
			ClientName:  "Northwind Health",
			AgentID:     "agent_2",
			AgentName:   "Market Analyst",
			AgentAvatar: "MA",
			AgentColor:  "#EC4899",
			Title:       "Competitor landscape",
			Timestamp:   "Yesterday",
			Messages: []conversation.Message{
				{ID: "msg_3", Role: conversation.RoleUser, Content: "List the three largest competitors and their pricing.", Timestamp: at(2, 5)},
			},
			CreatedAt: at(2, 5),
			UpdatedAt: at(2, 5),
		},
		{
			ID:          "conv_3",
			ProjectID:   "project_3",
			ProjectName: "Portfolio Risk Review",
			ClientID:    "client_2",
			ClientName:  "Meridian Capital",
			AgentID:     "agent_3",
			AgentName:   "Financial Modeler",
			AgentAvatar: "FM",
			AgentColor:  "#14B8A6",
			Title:       "Stress test scenarios",
			Timestamp:   "Yesterday",
			Messages:    []conversation.Message{},
			CreatedAt:   at(2, 8),
			UpdatedAt:   at(2, 8),
		},
	}
	for i := range convs {
		for _, m := range convs[i].Messages {
			if m.Role == conversation.RoleUser {
				convs[i].Preview = conversation.Preview(m.Content)
			}
		}
	}
	return convs
}

func Packages() []pricing.Package {
	return []pricing.Package{
		{
			ID:          "pkg_starter",
			Name:        "Starter",
			Description: "For independent consultants getting started.",
			Price:       49,
			Interval:    pricing.IntervalMonth,
			Features:    []string{"Up to 3 clients", "Basic AI agents", "Email support"},
			Limits:      pricing.Limits{Clients: 3, Projects: 10, Conversations: 100, StorageGB: 5},
			Active:      true,
			CreatedAt:   at(0, 0),
			UpdatedAt:   at(0, 0),
		},
		{
			ID:          "pkg_professional",
			Name:        "Professional",
			Description: "For growing consulting teams.",
			Price:       149,
			Interval:    pricing.IntervalMonth,
			Features:    []string{"Up to 15 clients", "All AI agents", "Priority support"},
			Limits:      pricing.Limits{Clients: 15, Projects: 50, Conversations: 1000, StorageGB: 50},
			Active:      true,
			Popular:     true,
			CreatedAt:   at(0, 0),
			UpdatedAt:   at(0, 0),
		},
		{
			ID:          "pkg_enterprise",
			Name:        "Enterprise",
			Description: "Unlimited usage with dedicated support.",
			Price:       4990,
			Interval:    pricing.IntervalYear,
			Features:    []string{"Unlimited clients", "Custom AI agents", "Dedicated account manager"},
			Limits: pricing.Limits{
				Clients:       pricing.Unlimited,
				Projects:      pricing.Unlimited,
				Conversations: pricing.Unlimited,
				StorageGB:     500,
			},
			Active:    true,
			CreatedAt: at(0, 0),
			UpdatedAt: at(0, 0),
		},
	}
}

func Billing() []billing.ClientBilling {
	return []billing.ClientBilling{
		{
			ID:                 "billing_1",
			ClientID:           "client_1",
			ClientName:         "Northwind Health",
			PackageID:          "pkg_professional",
			PackageName:        "Professional",
			Status:             billing.StatusActive,
			Amount:             149,
			CurrentPeriodStart: at(0, 0),
			CurrentPeriodEnd:   billing.PeriodEnd(at(0, 0), pricing.IntervalMonth),
			CreatedAt:          at(0, 0),
			UpdatedAt:          at(0, 0),
		},
		{
			ID:                 "billing_2",
			ClientID:           "client_2",
			ClientName:         "Meridian Capital",
			PackageID:          "pkg_starter",
			PackageName:        "Starter",
			Status:             billing.StatusTrialing,
			Amount:             49,
			CurrentPeriodStart: at(1, 0),
			CurrentPeriodEnd:   billing.PeriodEnd(at(1, 0), pricing.IntervalMonth),
			CreatedAt:          at(1, 0),
			UpdatedAt:          at(1, 0),
		},
	}
}

func Agents() []agent.AIAgent {
	return []agent.AIAgent{
		{
			ID:           "agent_1",
			Name:         "Strategy Advisor",
			Avatar:       "SA",
			Color:        "#6366F1",
			Description:  "Frames strategic options and trade-offs.",
			SystemPrompt: "You are a senior strategy consultant. Structure answers as options with trade-offs.",
			Capabilities: []string{"strategy", "frameworks"},
			Model:        agent.DefaultModel,
			Temperature:  agent.DefaultTemperature,
			MaxTokens:    agent.DefaultMaxTokens,
			Active:       true,
			CreatedAt:    at(0, 0),
			UpdatedAt:    at(0, 0),
		},
		{
			ID:           "agent_2",
			Name:         "Market Analyst",
			Avatar:       "MA",
			Color:        "#EC4899",
			Description:  "Sizes markets and maps competitors.",
			SystemPrompt: "You are a market analyst. Quantify where you can and state your assumptions.",
			Capabilities: []string{"market sizing", "competitive analysis"},
			Model:        agent.DefaultModel,
			Temperature:  0.5,
			MaxTokens:    agent.DefaultMaxTokens,
			Active:       true,
			CreatedAt:    at(0, 0),
			UpdatedAt:    at(0, 0),
		},
		{
			ID:           "agent_3",
			Name:         "Financial Modeler",
			Avatar:       "FM",
			Color:        "#14B8A6",
			Description:  "Builds projections and stress tests.",
			SystemPrompt: "You are a financial modeler. Show formulas and sensitivities.",
			Capabilities: []string{"forecasting", "valuation"},
			Model:        agent.DefaultModel,
			Temperature:  0.2,
			MaxTokens:    4000,
			Active:       false,
			CreatedAt:    at(0, 0),
			UpdatedAt:    at(0, 0),
		},
	}
}
