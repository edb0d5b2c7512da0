package models

import (
	"time"

	"github.com/google/uuid"
)

// TaxWildcard matches any value for a tax rate location field.
const TaxWildcard = "*"

// TaxRate represents a configured tax rate. Country is always a specific
// country code; State/Postcode/City each hold a specific value or the
// wildcard "*". Rates sharing a priority are applied to the same taxable
// base; a compound rate additionally bases itself on tax accumulated by
// lower-priority groups.
type TaxRate struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Country  string    `json:"country" gorm:"type:varchar(10);not null;index"`
	State    string    `json:"state" gorm:"type:varchar(100);default:'*'"`
	Postcode string    `json:"postcode" gorm:"type:varchar(20);default:'*'"`
	City     string    `json:"city" gorm:"type:varchar(100);default:'*'"`

	Rate     float64 `json:"rate" gorm:"type:decimal(10,4);not null"`
	Priority int     `json:"priority" gorm:"default:1"`
	Compound bool    `json:"compound" gorm:"default:false"`
	Shipping bool    `json:"shipping" gorm:"default:false"`
	Order    int     `json:"order" gorm:"column:sort_order;default:0"`
	TaxClass string  `json:"taxClass" gorm:"type:varchar(100);default:'standard'"`

	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
