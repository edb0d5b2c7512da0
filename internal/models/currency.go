package models

import (
	"time"

	"github.com/google/uuid"
)

// SymbolPosition controls where a currency symbol is rendered.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency holds display and conversion configuration for one currency.
// ExchangeRate is the number of base-currency units equal to 1 unit of
// this currency; the base currency itself carries a rate of 1. At most
// one currency has IsBase=true - the repository enforces this with an
// unset-then-set transaction.
type Currency struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Code           string         `json:"code" gorm:"type:varchar(10);not null;uniqueIndex"`
	Name           string         `json:"name" gorm:"type:varchar(100)"`
	Symbol         string         `json:"symbol" gorm:"type:varchar(10);not null"`
	SymbolPosition SymbolPosition `json:"symbolPosition" gorm:"type:varchar(20);default:'before'"`

	ExchangeRate  float64 `json:"exchangeRate" gorm:"type:decimal(18,8);not null;default:1"`
	DecimalPlaces int     `json:"decimalPlaces" gorm:"default:2"`
	ThousandSep   string  `json:"thousandSep" gorm:"type:varchar(5);default:','"`
	DecimalSep    string  `json:"decimalSep" gorm:"type:varchar(5);default:'.'"`

	IsBase   bool `json:"isBase" gorm:"default:false"`
	IsActive bool `json:"isActive" gorm:"default:true"`
	Position int  `json:"position" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
