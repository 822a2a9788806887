package models

import "time"

// ShortcodeLength длина генерируемого кода короткой ссылки.
const ShortcodeLength = 5

// DefaultValidityMinutes срок жизни ссылки по умолчанию (в минутах).
const DefaultValidityMinutes = 30

// Link структура модели хранения короткой ссылки.
type Link struct {
	Shortcode string    `json:"shortcode"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Clicks    []Click   `json:"clicks"`
}

// Click одно зафиксированное посещение короткой ссылки.
type Click struct {
	Timestamp  time.Time `json:"timestamp"`
	Referrer   string    `json:"referrer"`
	ClientAddr string    `json:"ip"`
}

// IsExpired возвращает true если срок жизни ссылки истек к моменту now.
// Сравнение строгое: ровно в момент expiresAt ссылка еще действительна.
func (l *Link) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}
