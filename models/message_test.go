package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMessage(t *testing.T, body string) Message {
	t.Helper()
	var m Message
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestMessage_Text(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"msg", `{"msg":"Signup successful"}`, "Signup successful"},
		{"string detail", `{"detail":"Username already exists"}`, "Username already exists"},
		{"msg wins", `{"msg":"ok","detail":"ignored"}`, "ok"},
		{"validation detail", `{"detail":[{"loc":["body","price"],"msg":"value is not a valid float","type":"type_error.float"},{"loc":["body"],"msg":"field required"}]}`, "price: value is not a valid float; body: field required"},
		{"object detail", `{"detail":{"reason":"x"}}`, `{"reason":"x"}`},
		{"empty", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeMessage(t, tt.body).Text())
		})
	}
}

func TestProduct_DisplayPrice(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"price":12.0}`, "12"},
		{`{"price":12.5}`, "12.5"},
		{`{"price":"300000"}`, "300000"},
		{`{}`, ""},
		{`{"price":null}`, ""},
		{`{"price":"free"}`, "free"},
	}
	for _, tt := range tests {
		var p Product
		require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
		assert.Equal(t, tt.want, p.DisplayPrice(), tt.body)
	}
}

func TestProduct_LenientRecords(t *testing.T) {
	var products []Product
	body := `[{"id":"a","name":"Chair","price":"free"},{"id":7,"name":"Lamp","price":5,"location":"Hanoi"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &products))
	require.Len(t, products, 2)

	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, "free", products[0].DisplayPrice())
	assert.Equal(t, "7", products[1].ID)
	assert.Equal(t, "Lamp", products[1].Name)
	assert.Equal(t, "Hanoi", products[1].Location)
	assert.Equal(t, "5", products[1].DisplayPrice())
}
