package billing

import "time"

// IDPrefix starts every billing record id.
const IDPrefix = "billing"

// Status mirrors the billing provider's subscription states.
type Status string

const (
	StatusActive     Status = "active"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusTrialing   Status = "trialing"
	StatusIncomplete Status = "incomplete"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPastDue, StatusCanceled, StatusTrialing, StatusIncomplete:
		return true
	}
	return false
}

// ClientBilling links a client to a pricing package. ClientID and PackageID are weak
// references; the names are denormalized for display.
type ClientBilling struct {
	ID                   string    `json:"id"`
	ClientID             string    `json:"clientId"`
	ClientName           string    `json:"clientName"`
	PackageID            string    `json:"packageId"`
	PackageName          string    `json:"packageName"`
	StripeCustomerID     string    `json:"stripeCustomerId"`
	StripeSubscriptionID string    `json:"stripeSubscriptionId"`
	Status               Status    `json:"status"`
	Amount               float64   `json:"amount"`
	CurrentPeriodStart   time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time `json:"currentPeriodEnd"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (b ClientBilling) RecordID() string { return b.ID }
