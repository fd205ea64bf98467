package models

import "time"

// Quote is a saved wizard result, kept so the store can follow up on the
// WhatsApp hand-off.
type Quote struct {
	ID            string       `json:"id"`
	Selections    Selections   `json:"selections"`
	Budget        BudgetResult `json:"budget"`
	Summary       PriceSummary `json:"summary"`
	CustomerName  string       `json:"customer_name,omitempty"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	WhatsAppURL   string       `json:"whatsapp_url"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Public drops the customer contact. Anyone holding the quote id can read
// the public copy; only the admin listing carries name and phone.
func (q Quote) Public() Quote {
	q.CustomerName = ""
	q.CustomerPhone = ""
	return q
}

type CreateQuoteRequest struct {
	Selections    Selections `json:"selections"`
	CustomerName  string     `json:"customer_name" binding:"max=120"`
	CustomerPhone string     `json:"customer_phone" binding:"max=32"`
}
