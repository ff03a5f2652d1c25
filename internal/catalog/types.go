package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Product is a single raw result as the search engine returns it.
type Product struct {
	ID        FlexString `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ImageURL  string     `json:"image_url"`
	PriceCent *int64     `json:"lowest_price_cents"`

	InstantShipPriceCents *int64 `json:"instant_ship_lowest_price_cents,omitempty"`

	ProductCondition string `json:"product_condition"`
	BoxCondition     string `json:"box_condition"`
}

// FacetOption is a raw facet value with its hit count.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet is a raw filter dimension.
type Facet struct {
	Name    string        `json:"name"`
	Label   string        `json:"label"`
	Type    string        `json:"type"`
	Options []FacetOption `json:"options"`
}

// searchAPIResponse is shared by the search and feed endpoints. Results is a
// pointer so a missing array can be told apart from an empty one.
type searchAPIResponse struct {
	Results *[]Product `json:"results"`
	Total   *int       `json:"total"`
	Facets  []Facet    `json:"facets"`
}

// FlexString accepts a JSON string or number. The search engine emits numeric
// ids for some indexes and string ids for others.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		if i, err := n.Int64(); err == nil {
			*s = FlexString(strconv.FormatInt(i, 10))
		} else {
			*s = FlexString(n.String())
		}
	}
	return nil
}
