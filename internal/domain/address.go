package domain

import "strings"

type Address struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	Number        string `json:"number"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Complement    string `json:"complement"`
}

// RawAddress holds address fields typed directly on the checkout screen.
type RawAddress struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
	Complement string `json:"complement"`
}

// HasAny reports whether at least one field is non-blank.
func (r RawAddress) HasAny() bool {
	for _, v := range []string{r.Street, r.Number, r.PostalCode, r.City, r.State, r.Complement} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
