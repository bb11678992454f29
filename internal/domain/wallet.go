package domain

// Currency is a configured currency such as GOLD
type Currency struct {
	ID       int    `json:"currency_id" db:"currency_id"`
	Code     string `json:"code" db:"code"`
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// Wallet is a per-owner, per-currency balance. Amount is never negative.
type Wallet struct {
	OwnerID    string `json:"owner_id" db:"owner_id"`
	CurrencyID int    `json:"currency_id" db:"currency_id"`
	Amount     int64  `json:"amount" db:"amount"`
}

// CurrencyGrant is an amount of currency awarded to an owner
type CurrencyGrant struct {
	CurrencyCode string `json:"currency_code"`
	Amount       int64  `json:"amount"`
}
