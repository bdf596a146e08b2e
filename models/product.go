package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Product is a product record as returned by the marketplace API. The client
// only displays it, so id and price are kept as text whatever JSON type the
// server used.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Location    string `json:"location"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var aux struct {
		plain
		ID    json.RawMessage `json:"id"`
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.ID = rawText(aux.ID)
	p.Price = rawText(aux.Price)
	return nil
}

// rawText renders a JSON scalar as text. Strings are unquoted, null is empty,
// anything else is kept as written.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

// DisplayPrice renders a numeric price in its shortest form, so 12.0 shows
// as "12". Non-numeric prices are shown as sent.
func (p Product) DisplayPrice() string {
	f, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return p.Price
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ProductInput is the body of a create-product request
type ProductInput struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Location    string  `json:"location" form:"location"`
}

// CartAction is the body of an add-to-cart request
type CartAction struct {
	ProductID string `json:"product_id"`
}
