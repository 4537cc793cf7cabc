package entities

import "time"

// Contract statuses
const (
	ContractStatusPending   = "pending"
	ContractStatusAccepted  = "accepted"
	ContractStatusCompleted = "completed"
	ContractStatusRejected  = "rejected"
)

// ValidContractStatus reports whether s is one of the known statuses.
func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusPending, ContractStatusAccepted, ContractStatusCompleted, ContractStatusRejected:
		return true
	}
	return false
}

// Contract is a hiring agreement between a client and a provider over one
// service.
type Contract struct {
	ID         string    `json:"id" db:"id"`
	ServiceID  string    `json:"serviceId" db:"service_id"`
	ClientID   string    `json:"clientId" db:"client_id"`
	ProviderID string    `json:"providerId" db:"provider_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ContractClient is the compact client block embedded in contract views.
type ContractClient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ContractView is a contract enriched with its service detail and client
// info for dashboard responses. Either side may be nil when the referenced
// record no longer exists.
type ContractView struct {
	Contract
	Service *ServiceDetail  `json:"service,omitempty"`
	Client  *ContractClient `json:"client,omitempty"`
}
