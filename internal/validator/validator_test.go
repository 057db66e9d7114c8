package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Type     string `binding:"required,movement_type"`
	Quantity string `binding:"required,positive_decimal"`
	Fee      string `binding:"omitempty,decimal_string"`
	Kind     string `binding:"omitempty,wallet_kind"`
	Asset    string `binding:"omitempty,asset_kind"`
	Currency string `binding:"omitempty,iso4217"`
}

func TestRegister(t *testing.T) {
	Register()

	valid := sample{Type: "BUY", Quantity: "0.5", Fee: "0", Kind: "cold", Asset: "fiat", Currency: "eur"}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	cases := map[string]sample{
		"unknown_type":      {Type: "GIFT", Quantity: "1"},
		"lowercase_type":    {Type: "buy", Quantity: "1"},
		"zero_quantity":     {Type: "SELL", Quantity: "0"},
		"garbage_quantity":  {Type: "SELL", Quantity: "1,5"},
		"garbage_fee":       {Type: "SELL", Quantity: "1", Fee: "abc"},
		"unknown_wallet":    {Type: "FEE", Quantity: "1", Kind: "vault"},
		"unknown_asset":     {Type: "FEE", Quantity: "1", Asset: "stock"},
		"unknown_currency":  {Type: "FEE", Quantity: "1", Currency: "XYZ"},
		"negative_quantity": {Type: "FEE", Quantity: "-1"},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, binding.Validator.ValidateStruct(&s))
		})
	}
}
