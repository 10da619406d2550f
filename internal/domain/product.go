package domain

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Category    string          `json:"category"`
	Subject     string          `json:"subject"`
	Series      string          `json:"series"`
	Type        string          `json:"type"`
	NewArrival  bool            `json:"newArrival"`
	Featured    bool            `json:"featured"`
	Rating      *float64        `json:"rating,omitempty"`
	ReviewCount *int            `json:"reviewCount,omitempty"`
	ImageURL    string          `json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Product) EffectivePrice() decimal.Decimal {
	return EffectivePrice(p.Price, p.Discount)
}

// ProductFilter narrows catalog listings. Empty fields match everything.
type ProductFilter struct {
	Category   string
	Subject    string
	Series     string
	Type       string
	Featured   *bool
	NewArrival *bool
}

// Key is identical for equal filters. Values are query-escaped so that no
// value can spell out another field.
func (f ProductFilter) Key() string {
	return url.Values{
		"category": {f.Category},
		"subject":  {f.Subject},
		"series":   {f.Series},
		"type":     {f.Type},
		"featured": {optBool(f.Featured)},
		"new":      {optBool(f.NewArrival)},
	}.Encode()
}

func optBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
