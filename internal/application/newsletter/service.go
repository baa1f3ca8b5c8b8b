package newsletter

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/notification"
	"github.com/helios/backend/internal/domain/shared"
)

// Service manages the newsletter mailing list
type Service struct {
	subscriberRepo notification.SubscriberRepository
	logger         *zap.Logger
}

// NewService creates a new newsletter Service
func NewService(subscriberRepo notification.SubscriberRepository, logger *zap.Logger) *Service {
	return &Service{subscriberRepo: subscriberRepo, logger: logger}
}

// Subscribe adds an email to the mailing list.
// Subscribing an address that previously unsubscribed re-activates it.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	existing, err := s.subscriberRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsSubscribed {
			return nil
		}
		existing.Resubscribe()
		return s.subscriberRepo.Save(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		sub, err := notification.NewSubscriber(email)
		if err != nil {
			return err
		}
		return s.subscriberRepo.Save(ctx, sub)
	default:
		return err
	}
}

// Unsubscribe removes an email from future mailings
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	existing, err := s.subscriberRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !existing.IsSubscribed {
		return nil
	}

	existing.Unsubscribe()
	return s.subscriberRepo.Save(ctx, existing)
}
