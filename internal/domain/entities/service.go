package entities

import "time"

// Service is a listing offered by a provider. Price is free-form text on
// the wire ("25 €/h", "a convenir") so it stays a string end to end.
type Service struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description,omitempty" db:"description"`
	Category        string    `json:"category,omitempty" db:"category"`
	Location        string    `json:"location,omitempty" db:"location"`
	Price           string    `json:"price,omitempty" db:"price"`
	Image           string    `json:"image,omitempty" db:"image"`
	SocialInstagram string    `json:"socialInstagram,omitempty" db:"social_instagram"`
	SocialWhatsapp  string    `json:"socialWhatsapp,omitempty" db:"social_whatsapp"`
	ProviderID      string    `json:"providerId" db:"provider_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ProviderSummary is the compact provider block embedded in service
// listings. Rating is the arithmetic mean of the service's review ratings,
// 0 when there are none; Reviews is the count.
type ProviderSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// ServiceListing is a service enriched for catalog responses. Provider is
// nil when the owning user no longer exists.
type ServiceListing struct {
	Service
	Provider *ProviderSummary `json:"provider,omitempty"`
}

// ServiceDetail is a single service with its full (sanitized) provider and
// its reviews.
type ServiceDetail struct {
	Service
	Provider *User     `json:"provider,omitempty"`
	Reviews  []*Review `json:"reviews"`
}
