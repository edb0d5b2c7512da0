package models

import (
	"time"

	"github.com/google/uuid"
)

// ZoneType represents the scope of a shipping zone
type ZoneType string

const (
	ZoneTypeGlobal  ZoneType = "global"
	ZoneTypeCountry ZoneType = "country"
)

// LocationType represents how a shipping location matches an address
type LocationType string

const (
	LocationTypeCountry  LocationType = "country"
	LocationTypeState    LocationType = "state"
	LocationTypePostcode LocationType = "postcode"
)

// MethodType represents the pricing behavior of a shipping method
type MethodType string

const (
	MethodTypeFlatRate     MethodType = "flat_rate"
	MethodTypeFreeShipping MethodType = "free_shipping"
	MethodTypeLocalPickup  MethodType = "local_pickup"
)

// ShippingZone groups locations and methods under a single priority.
// Zones are matched against the destination address in ascending
// priority order; the first zone with any matching location wins.
type ShippingZone struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Slug     string    `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Type     ZoneType  `json:"type" gorm:"type:varchar(50);not null;default:'country'"`
	Priority int       `json:"priority" gorm:"default:0;index"`
	IsActive bool      `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationships
	Locations []ShippingLocation `json:"locations,omitempty" gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
	Methods   []ShippingMethod   `json:"methods,omitempty" gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
}

// ShippingLocation is a matching rule owned by a zone. Codes are compared
// with exact string equality: "VN" for a country, "VN:HCM" for a state,
// or a raw postcode string.
type ShippingLocation struct {
	ID     uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ZoneID uuid.UUID    `json:"zoneId" gorm:"type:uuid;not null;index"`
	Type   LocationType `json:"type" gorm:"type:varchar(50);not null"`
	Code   string       `json:"code" gorm:"type:varchar(100);not null"`
	Name   string       `json:"name" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ShippingMethod is a rate option offered within a zone.
type ShippingMethod struct {
	ID     uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ZoneID uuid.UUID  `json:"zoneId" gorm:"type:uuid;not null;index"`
	Title  string     `json:"title" gorm:"type:varchar(255);not null"`
	Type   MethodType `json:"type" gorm:"type:varchar(50);not null;default:'flat_rate'"`
	Cost   float64    `json:"cost" gorm:"type:decimal(12,2);default:0"`

	// Cart-total thresholds. MinAmount gates availability; MaxAmount is
	// stored for admin configuration but not enforced during filtering.
	MinAmount *float64 `json:"minAmount" gorm:"type:decimal(12,2)"`
	MaxAmount *float64 `json:"maxAmount" gorm:"type:decimal(12,2)"`

	EstimatedDays int  `json:"estimatedDays" gorm:"default:0"`
	Position      int  `json:"position" gorm:"default:0"`
	IsActive      bool `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
