package store

// Slot names in the backing store. They are part of the persisted format.
const (
	KeyClients          = "clients"
	KeyProjects         = "projects"
	KeyConversations    = "conversations"
	KeyInitialized      = "initialized"
	KeyPricingPackages  = "admin_pricing_packages"
	KeyClientBilling    = "admin_client_billing"
	KeyAIAgents         = "admin_ai_agents"
	KeyPlatformSettings = "admin_platform_settings"
)
