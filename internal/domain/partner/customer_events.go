package partner

import (
	"github.com/editora/backend/internal/domain/shared"
)

// Event types for the partner domain
const (
	EventTypeCustomerCreated = "partner.customer.created"
)

// CustomerCreatedEvent is published when a new customer account is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name    string  `json:"name"`
	Channel Channel `json:"channel"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", customer.ID, customer.TenantID),
		Name:            customer.Name,
		Channel:         customer.Channel,
	}
}
