package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the three allowed order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is expected out of s.
// Enforcement is a policy decision, see OrderUseCase.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderTypeCustomer marks records created through the public order form.
const OrderTypeCustomer = "customer_order"

// Order is a customer's subscription purchase request. The ID is assigned by
// the repository on Create.
type Order struct {
	ID                 string      `json:"id"`
	SubscriptionID     int         `json:"subscriptionId"`
	SubscriptionName   string      `json:"subscriptionName"`
	PlanKey            string      `json:"planKey,omitempty"`
	PlanName           string      `json:"planName,omitempty"`
	PlanDuration       string      `json:"planDuration,omitempty"`
	PlanPrice          int64       `json:"planPrice"`
	AccountName        string      `json:"accountName"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	TransferNumber     string      `json:"transferNumber"`
	TransferScreenshot string      `json:"transferScreenshot,omitempty"`
	Status             OrderStatus `json:"status"`
	Type               string      `json:"type"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          *time.Time  `json:"updatedAt,omitempty"`
}
