package models

import "github.com/google/uuid"

// CalculateShippingRequest represents a request to resolve shipping options.
// CartTotal is a pointer so a zero total (an empty or fully discounted cart)
// still satisfies the presence check.
type CalculateShippingRequest struct {
	Country   string   `json:"country" binding:"required"`
	State     string   `json:"state"`
	Postcode  string   `json:"postcode"`
	CartTotal *float64 `json:"cartTotal" binding:"required,gte=0"`
}

// ShippingMethodQuote is one annotated shipping option. Cost keeps its
// configured value when the method is unavailable so admins can surface
// "spend X more for free shipping" style messaging.
type ShippingMethodQuote struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Type          MethodType `json:"type"`
	Cost          float64    `json:"cost"`
	EstimatedDays int        `json:"estimatedDays,omitempty"`
	Available     bool       `json:"available"`
	Reason        string     `json:"reason,omitempty"`
}

// ZoneSummary identifies the matched zone in a shipping response
type ZoneSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CalculateShippingResponse represents the response from shipping calculation
type CalculateShippingResponse struct {
	Zone    *ZoneSummary          `json:"zone"`
	Methods []ShippingMethodQuote `json:"methods"`
}

// CalculateTaxRequest represents a request to calculate tax. Subtotal is a
// pointer so a zero subtotal still satisfies the presence check.
type CalculateTaxRequest struct {
	Country       string   `json:"country" binding:"required"`
	State         string   `json:"state"`
	Postcode      string   `json:"postcode"`
	City          string   `json:"city"`
	Subtotal      *float64 `json:"subtotal" binding:"required,gte=0"`
	ShippingTotal float64  `json:"shippingTotal"`
}

// AppliedRate identifies one tax rate that participated in a calculation
type AppliedRate struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Rate float64   `json:"rate"`
}

// TaxLine is one entry of the per-rate tax breakdown
type TaxLine struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
	Compound bool    `json:"compound"`
}

// CalculateTaxResponse represents the response from tax calculation
type CalculateTaxResponse struct {
	TaxTotal  float64       `json:"taxTotal"`
	Rates     []AppliedRate `json:"rates"`
	Breakdown []TaxLine     `json:"breakdown"`
}

// ConvertCurrencyRequest represents a request to convert an amount
type ConvertCurrencyRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
}

// ConvertedAmount is one side of a currency conversion
type ConvertedAmount struct {
	Code      string  `json:"code"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// ConvertCurrencyResponse represents the response from currency conversion
type ConvertCurrencyResponse struct {
	From ConvertedAmount `json:"from"`
	To   ConvertedAmount `json:"to"`
	Rate float64         `json:"rate"`
}

// CreateLocationRequest adds a matching rule to a zone
type CreateLocationRequest struct {
	Type LocationType `json:"type" binding:"required"`
	Code string       `json:"code" binding:"required"`
	Name string       `json:"name"`
}
