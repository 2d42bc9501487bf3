package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DeliveryCriterion is one fixed-price local delivery tier, persisted in Postgres.
// Tiers are read in ascending MaxDistance order; a tier matches every distance up
// to and including its MaxDistance.
type DeliveryCriterion struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MaxDistance    float64   `gorm:"not null;index" json:"maxDistance"`
	DeliveryMethod string    `gorm:"type:varchar(128);not null" json:"deliveryMethod"`
	DeliveryTime   string    `gorm:"type:varchar(128);not null" json:"deliveryTime"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName pins the table name used by gorm.
func (DeliveryCriterion) TableName() string {
	return "delivery_criteria"
}

// CreateDeliveryCriterionRequest is the payload for adding a tier.
type CreateDeliveryCriterionRequest struct {
	MaxDistance    float64 `json:"maxDistance" binding:"required,gt=0"`
	DeliveryMethod string  `json:"deliveryMethod" binding:"required"`
	DeliveryTime   string  `json:"deliveryTime" binding:"required"`
	Price          float64 `json:"price" binding:"gte=0"`
}

// DistanceCandidate pairs a store with its route distance to the customer.
type DistanceCandidate struct {
	Store      Store
	DistanceKm float64
}

// FreightRequest is the normalized input of a freight quotation. Postal codes
// are digits only; dimensions are centimetres encoded as strings.
type FreightRequest struct {
	OriginPostalCode      string
	DestinationPostalCode string
	Length                string
	Width                 string
	Height                string
}

// FreightQuote is one service tier returned by the freight provider.
type FreightQuote struct {
	Price        string
	LeadTimeDays string
	ServiceTitle string
}

// ShippingOption is the normalized per-tier quote returned to callers.
type ShippingOption struct {
	LeadTime    string `json:"prazo"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// ShippingStoreResult is a store together with its shipping options.
type ShippingStoreResult struct {
	Name       string           `json:"name"`
	City       string           `json:"city"`
	PostalCode string           `json:"postalCode"`
	Type       StoreType        `json:"type"`
	Distance   string           `json:"distance"`
	Value      []ShippingOption `json:"value"`
}

// MapPin marks a store on the customer's map.
type MapPin struct {
	Position Coordinates `json:"position"`
	Title    string      `json:"title"`
}

// StoresWithShipping is the envelope of a shipping resolution request. Stores and
// Pins are index aligned.
type StoresWithShipping struct {
	Stores []ShippingStoreResult `json:"stores"`
	Pins   []MapPin              `json:"pins"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
	Total  int                   `json:"total"`
}
