package models

import (
	"time"
)

// StoreType classifies a physical store.
type StoreType string

const (
	StoreTypePDV  StoreType = "PDV"
	StoreTypeLoja StoreType = "LOJA"
)

// Store is the document persisted in the Mongo "stores" collection.
type Store struct {
	ID                 string    `bson:"_id" json:"id"`
	StoreName          string    `bson:"storeName" json:"storeName"`
	TakeOutInStore     bool      `bson:"takeOutInStore" json:"takeOutInStore"`
	ShippingTimeInDays int       `bson:"shippingTimeInDays" json:"shippingTimeInDays"`
	Latitude           string    `bson:"latitude" json:"latitude"`
	Longitude          string    `bson:"longitude" json:"longitude"`
	Address1           string    `bson:"address1" json:"address1"`
	Address2           string    `bson:"address2,omitempty" json:"address2,omitempty"`
	Address3           string    `bson:"address3,omitempty" json:"address3,omitempty"`
	District           string    `bson:"district" json:"district"`
	State              string    `bson:"state" json:"state"`
	City               string    `bson:"city" json:"city"`
	Type               StoreType `bson:"type" json:"type"`
	Country            string    `bson:"country" json:"country"`
	PostalCode         string    `bson:"postalCode" json:"postalCode"`
	TelephoneNumber    string    `bson:"telephoneNumber" json:"telephoneNumber"`
	EmailAddress       string    `bson:"emailAddress" json:"emailAddress"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Destination renders the store position as a "lat,lng" pair understood by the
// distance matrix.
func (s Store) Destination() string {
	return s.Latitude + "," + s.Longitude
}

// CreateStoreRequest is the payload for registering a store. Coordinates are
// never accepted from the caller; they come from geocoding the address.
type CreateStoreRequest struct {
	StoreName          string    `json:"storeName" binding:"required"`
	TakeOutInStore     bool      `json:"takeOutInStore"`
	ShippingTimeInDays int       `json:"shippingTimeInDays" binding:"gte=0"`
	Address1           string    `json:"address1" binding:"required"`
	Address2           string    `json:"address2"`
	Address3           string    `json:"address3"`
	District           string    `json:"district" binding:"required"`
	State              string    `json:"state" binding:"required,uf"`
	City               string    `json:"city" binding:"required"`
	Type               StoreType `json:"type" binding:"required,oneof=PDV LOJA"`
	Country            string    `json:"country" binding:"required"`
	PostalCode         string    `json:"postalCode" binding:"required,cep"`
	TelephoneNumber    string    `json:"telephoneNumber" binding:"required"`
	EmailAddress       string    `json:"emailAddress" binding:"required,email"`
}

// UpdateStoreRequest carries a partial update; nil fields are left untouched.
type UpdateStoreRequest struct {
	StoreName          *string    `json:"storeName,omitempty"`
	TakeOutInStore     *bool      `json:"takeOutInStore,omitempty"`
	ShippingTimeInDays *int       `json:"shippingTimeInDays,omitempty" binding:"omitempty,gte=0"`
	Address1           *string    `json:"address1,omitempty"`
	Address2           *string    `json:"address2,omitempty"`
	Address3           *string    `json:"address3,omitempty"`
	District           *string    `json:"district,omitempty"`
	State              *string    `json:"state,omitempty" binding:"omitempty,uf"`
	City               *string    `json:"city,omitempty"`
	Type               *StoreType `json:"type,omitempty" binding:"omitempty,oneof=PDV LOJA"`
	Country            *string    `json:"country,omitempty"`
	PostalCode         *string    `json:"postalCode,omitempty" binding:"omitempty,cep"`
	TelephoneNumber    *string    `json:"telephoneNumber,omitempty"`
	EmailAddress       *string    `json:"emailAddress,omitempty" binding:"omitempty,email"`
}

// PaginatedStores is the envelope returned by store listings.
type PaginatedStores struct {
	Stores []Store `json:"stores"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Total  int64   `json:"total"`
}
