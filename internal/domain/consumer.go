package domain

import (
	"strings"
	"time"
	"unicode"
)

// Consumer is a client who books appointments.
// Consumers are consolidated across bookings by normalized email or phone.
type Consumer struct {
	ID              int64
	Name            string
	Email           *string
	Phone           *string
	EmailNormalized *string
	PhoneNormalized *string
	CreatedAt       time.Time
}

// NormalizeEmail lower-cases and trims an email. Empty input yields "".
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits only. Input without digits yields "".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContactInfo contact data given with a booking request
type ContactInfo struct {
	Name  string
	Email *string
	Phone *string
}

// NormalizedEmail normalized email or "" if absent
func (c ContactInfo) NormalizedEmail() string {
	if c.Email == nil {
		return ""
	}
	return NormalizeEmail(*c.Email)
}

// NormalizedPhone normalized phone or "" if absent
func (c ContactInfo) NormalizedPhone() string {
	if c.Phone == nil {
		return ""
	}
	return NormalizePhone(*c.Phone)
}

// HasIdentity reports whether the contact can identify a consumer
func (c ContactInfo) HasIdentity() bool {
	return c.NormalizedEmail() != "" || c.NormalizedPhone() != ""
}
