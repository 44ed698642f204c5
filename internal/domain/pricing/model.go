package pricing

import "time"

// IDPrefix starts every package id.
const IDPrefix = "pkg"

// Unlimited is the limit value meaning "no cap".
const Unlimited = -1

// Interval is a billing period.
type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

func (i Interval) Valid() bool {
	return i == IntervalMonth || i == IntervalYear
}

// Limits caps usage per package. Any field may be Unlimited.
type Limits struct {
	Clients       int `json:"clients"`
	Projects      int `json:"projects"`
	Conversations int `json:"conversations"`
	StorageGB     int `json:"storage"`
}

func (l Limits) valid() bool {
	for _, n := range []int{l.Clients, l.Projects, l.Conversations, l.StorageGB} {
		if n < Unlimited {
			return false
		}
	}
	return true
}

// Package is a subscription tier sold through the billing provider.
type Package struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Interval      Interval  `json:"interval"`
	StripePriceID string    `json:"stripePriceId"`
	Features      []string  `json:"features"`
	Limits        Limits    `json:"limits"`
	Active        bool      `json:"active"`
	Popular       bool      `json:"popular"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p Package) RecordID() string { return p.ID }
