package notification

import (
	"strings"
	"time"

	"github.com/helios/backend/internal/domain/shared"
)

// Subscriber is a newsletter mailing list entry
type Subscriber struct {
	shared.BaseEntity
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	IsSubscribed bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}

// NewSubscriber creates a subscribed mailing list entry
func NewSubscriber(email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	return &Subscriber{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		IsSubscribed: true,
	}, nil
}

// Unsubscribe removes the address from future mailings
func (s *Subscriber) Unsubscribe() {
	s.IsSubscribed = false
	s.UpdatedAt = time.Now()
}

// Resubscribe opts the address back in
func (s *Subscriber) Resubscribe() {
	s.IsSubscribed = true
	s.UpdatedAt = time.Now()
}
