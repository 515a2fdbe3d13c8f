package normalize

import (
	"encoding/json"

	"tazkara/internal/models"
)

// WalletBalance resolves the numeric balance from any of the shapes the
// wallet endpoint is known to answer with: a bare number, {"balance": ...},
// {"wallet_balance": ...} or {"data": {"wallet_balance": ...}}. String
// amounts like "1234.50" parse as numbers. An unrecognized but well-formed
// body yields zero, never an error.
func WalletBalance(data []byte) float64 {
	var bare models.FlexibleNumber
	if err := json.Unmarshal(data, &bare); err == nil && bare.Valid {
		return bare.Value
	}

	var obj struct {
		Balance       models.FlexibleNumber `json:"balance"`
		WalletBalance models.FlexibleNumber `json:"wallet_balance"`
		Data          struct {
			WalletBalance models.FlexibleNumber `json:"wallet_balance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return 0
	}

	switch {
	case obj.Balance.Valid:
		return obj.Balance.Value
	case obj.WalletBalance.Valid:
		return obj.WalletBalance.Value
	case obj.Data.WalletBalance.Valid:
		return obj.Data.WalletBalance.Value
	}
	return 0
}

// Transactions accepts the history either as a bare array or wrapped in a
// {"data": [...]} envelope; anything else is an empty history.
func Transactions(data []byte) []models.Transaction {
	var list []models.Transaction
	if err := json.Unmarshal(data, &list); err == nil && list != nil {
		return list
	}

	var envelope struct {
		Data []models.Transaction `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}
	return []models.Transaction{}
}
