package domain

import "github.com/shopspring/decimal"

type Order struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
