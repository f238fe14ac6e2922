package domain

import "time"

// TokenTTL срок жизни токена завершения ручного бронирования
const TokenTTL = 7 * 24 * time.Hour

// BookingToken represents a single-use completion link for a manual booking
type BookingToken struct {
	Token     string
	BookingID int64
	ExpiresAt time.Time
	UsedAt    *time.Time
	// Ответы анкеты, поданные при завершении (JSON)
	Answers   []byte
	CreatedAt time.Time
}

// IsExpired returns true if the token is past its expiry
func (t *BookingToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsUsed returns true if the token has already been consumed
func (t *BookingToken) IsUsed() bool {
	return t.UsedAt != nil
}

// IsUsable returns true if the token can still complete its booking
func (t *BookingToken) IsUsable(now time.Time) bool {
	return !t.IsUsed() && !t.IsExpired(now)
}
