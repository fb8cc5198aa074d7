package domain

import "time"

// Link представляет сокращенную ссылку. После создания не изменяется.
type Link struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"-"`
	ShortID      string    `gorm:"column:short_id;size:64;uniqueIndex;not null" json:"short_id"`
	LongURL      string    `gorm:"column:long_url;type:text;not null" json:"long_url"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	PasswordHash *string   `gorm:"column:password_hash;size:72" json:"-"` // bcrypt; nil - ссылка без пароля
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName возвращает название таблицы для GORM
func (Link) TableName() string {
	return "links"
}

// IsExpired сообщает, истек ли срок жизни ссылки на момент now.
// Граница включается: при now == ExpiresAt ссылка уже недоступна.
func (l *Link) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}

// HasPassword сообщает, закрыта ли ссылка паролем
func (l *Link) HasPassword() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}

// Clone возвращает независимую копию ссылки
func (l *Link) Clone() *Link {
	c := *l
	if l.PasswordHash != nil {
		hash := *l.PasswordHash
		c.PasswordHash = &hash
	}
	return &c
}
