package model

import (
	"strconv"
	"strings"

	"subscription-storefront/internal/domain"
)

// Duration tokens stored on orders and plans. The storefront is Arabic-facing,
// so the canonical tokens are Arabic; English form values are normalized.
const (
	DurationMonthly = "شهري"
	DurationYearly  = "سنوي"
)

// NormalizeDuration maps English duration tokens to their canonical Arabic
// form. Already-canonical tokens pass through unchanged.
func NormalizeDuration(tok string) string {
	switch strings.ToLower(strings.TrimSpace(tok)) {
	case "monthly":
		return DurationMonthly
	case "yearly":
		return DurationYearly
	default:
		return strings.TrimSpace(tok)
	}
}

// Subscription is one resellable streaming service.
type Subscription struct {
	ID        int    `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	BasePrice int64  `yaml:"base_price" json:"basePrice"`
}

// Plan is a priced variant of a subscription (e.g. monthly vs yearly).
type Plan struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Duration string `yaml:"duration" json:"duration"`
	Price    int64  `yaml:"price" json:"price"`
}

// Catalog holds the resellable subscriptions and their plans. It is built
// once at startup and never mutated, so concurrent reads are safe.
type Catalog struct {
	subs  map[int]Subscription
	plans map[int][]Plan
}

func NewCatalog(subs []Subscription, plans map[int][]Plan) (*Catalog, error) {
	if len(subs) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	byID := make(map[int]Subscription, len(subs))
	for _, s := range subs {
		if s.ID <= 0 || s.Name == "" {
			return nil, domain.ErrInvalidArgument
		}
		if _, dup := byID[s.ID]; dup {
			return nil, domain.ErrAlreadyExists
		}
		byID[s.ID] = s
	}
	normalized := make(map[int][]Plan, len(plans))
	for id, ps := range plans {
		if _, ok := byID[id]; !ok {
			return nil, domain.ErrInvalidArgument
		}
		out := make([]Plan, len(ps))
		for i, p := range ps {
			p.Duration = NormalizeDuration(p.Duration)
			out[i] = p
		}
		normalized[id] = out
	}
	return &Catalog{subs: byID, plans: normalized}, nil
}

// ParseSubscriptionID accepts the id as it arrives on the wire: form values
// are strings, JSON clients may send numbers that render as "2" or "2.0".
func ParseSubscriptionID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidArgument
	}
	if id, err := strconv.Atoi(raw); err == nil && id > 0 {
		return id, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) && f > 0 {
		return int(f), nil
	}
	return 0, domain.ErrInvalidArgument
}

// Subscription returns the catalog entry for id.
func (c *Catalog) Subscription(id int) (Subscription, bool) {
	s, ok := c.subs[id]
	return s, ok
}

// Plans returns the plans grouped under a subscription, possibly empty.
func (c *Catalog) Plans(subscriptionID int) []Plan {
	return c.plans[subscriptionID]
}

// FindPlan resolves (subscriptionID, planKey) against the catalog.
func (c *Catalog) FindPlan(subscriptionID int, key string) (Plan, bool) {
	for _, p := range c.plans[subscriptionID] {
		if p.Key == key {
			return p, true
		}
	}
	return Plan{}, false
}
