// Package domain defines the canonical records the gateway returns to the
// storefront, independent of any upstream's wire shape.
package domain

import (
	"encoding/json"
	"time"
)

// ProductSummary is a normalized product card shared by search, feed and
// recommendation results.
type ProductSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`

	// Pricing, in major currency units.
	Price            float64  `json:"price"`
	InstantShipPrice *float64 `json:"instantShipPrice,omitempty"`

	ProductCondition string `json:"productCondition,omitempty"`
	BoxCondition     string `json:"boxCondition,omitempty"`
}

// Valid reports whether the record carries every field the storefront needs
// to render and link it.
func (p *ProductSummary) Valid() bool {
	return p.ID != "" && p.Slug != "" && p.Image != "" && p.Name != ""
}

// BrandSummary is one entry of the brand directory.
type BrandSummary struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FacetOption is a single candidate value of a facet with its hit count.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet is an upstream filter dimension. The gateway passes it through
// without interpreting it.
type Facet struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Options []FacetOption `json:"options"`
}

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	// Total is nil when the upstream does not report a total count.
	Total   *int
	HasMore bool
}

// FailureMarker is rendered in place of secondary data that could not be
// retrieved, so callers can tell "fetch failed" apart from "no data".
type FailureMarker struct {
	Unavailable bool   `json:"unavailable"`
	Error       string `json:"error"`
}

// Enrichment holds the outcome of a secondary lookup: either a value or the
// error that prevented it.
type Enrichment[T any] struct {
	Value T
	Err   error
}

// Available wraps a successfully fetched value.
func Available[T any](v T) Enrichment[T] {
	return Enrichment[T]{Value: v}
}

// Unavailable records a failed lookup.
func Unavailable[T any](err error) Enrichment[T] {
	return Enrichment[T]{Err: err}
}

// OK reports whether the lookup succeeded.
func (e Enrichment[T]) OK() bool {
	return e.Err == nil
}

// MarshalJSON renders the value on success and a FailureMarker otherwise.
func (e Enrichment[T]) MarshalJSON() ([]byte, error) {
	if e.Err != nil {
		return json.Marshal(FailureMarker{Unavailable: true, Error: e.Err.Error()})
	}
	return json.Marshal(e.Value)
}

// ProductDetailBundle composes a product page from one mandatory and two
// optional upstream calls.
type ProductDetailBundle struct {
	// Data is the product template exactly as the marketplace returned it.
	Data       json.RawMessage
	TemplateID string

	Price       Enrichment[json.RawMessage]
	Recommended Enrichment[[]json.RawMessage]
}

// ExchangeRate is a captured conversion rate from Base to Target.
type ExchangeRate struct {
	Base       string    `json:"base"`
	Target     string    `json:"target"`
	Rate       float64   `json:"rate"`
	CapturedAt time.Time `json:"captured_at"`
}
