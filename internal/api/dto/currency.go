package dto

import (
	"github.com/billfold/billfold/internal/validator"
	"github.com/shopspring/decimal"
)

type ConvertCurrencyRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	From   string          `json:"from" validate:"required,len=3"`
	To     string          `json:"to" validate:"required,len=3"`
}

func (r *ConvertCurrencyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ConvertCurrencyResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
	Formatted string          `json:"formatted"`
}
