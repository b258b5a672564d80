// Package booking applies the two domain counter increments: ticket
// purchases bump an event's tickets_sold, community joins bump an
// organisation's member_count.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"culturepass/internal/kafka"
	"culturepass/internal/logger"
	"culturepass/internal/models"
)

var (
	ErrSoldOut         = errors.New("booking: event sold out")
	ErrAlreadyMember   = errors.New("booking: already a member")
	ErrInvalidQuantity = errors.New("booking: quantity must be positive")
)

type DBLayer interface {
	InsertOrder(ctx context.Context, order models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	IncrementTicketsSold(ctx context.Context, eventID string, qty int, allowOversell bool) error
	InsertMembership(ctx context.Context, membership models.Membership) error
	DeleteMembership(ctx context.Context, id string) error
	MembershipExists(ctx context.Context, userID, orgID string) (bool, error)
	IncrementMemberCount(ctx context.Context, orgID string) error
}

type Publisher interface {
	Publish(topic string, key string, value []byte) error
}

type Service struct {
	DB            DBLayer
	Kafka         Publisher
	Logger        *logger.Logger
	AllowOversell bool
}

func NewService(db DBLayer, publisher Publisher, log *logger.Logger, allowOversell bool) *Service {
	return &Service{DB: db, Kafka: publisher, Logger: log, AllowOversell: allowOversell}
}

// RecordOrder inserts the purchase record and applies the tickets_sold
// increment. With the capacity guard on, a failed increment removes the
// order row again so the pair stays consistent.
func (s *Service) RecordOrder(ctx context.Context, userID, eventID string, quantity int, amount float64) (*models.Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	order := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventID:   eventID,
		Quantity:  quantity,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	if err := s.DB.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := s.DB.IncrementTicketsSold(ctx, eventID, quantity, s.AllowOversell); err != nil {
		if delErr := s.DB.DeleteOrder(ctx, order.ID); delErr != nil {
			s.Logger.Error("BOOKING", fmt.Sprintf("failed to roll back order %s: %v", order.ID, delErr))
		}
		return nil, err
	}

	s.Logger.LogBooking("ORDER", order.ID, fmt.Sprintf("user %s bought %d tickets for event %s", userID, quantity, eventID))
	s.publish(kafka.TopicOrderCreated, order.ID, order)
	return &order, nil
}

// RecordMembership creates the join record and bumps member_count exactly
// once. A duplicate (user, org) pair fails with ErrAlreadyMember whether
// it is caught by the pre-insert check or by the unique index.
func (s *Service) RecordMembership(ctx context.Context, userID, orgID string) (*models.Membership, error) {
	exists, err := s.DB.MembershipExists(ctx, userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	membership := models.Membership{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrganisationID: orgID,
		CreatedAt:      time.Now(),
	}

	if err := s.DB.InsertMembership(ctx, membership); err != nil {
		return nil, err
	}

	if err := s.DB.IncrementMemberCount(ctx, orgID); err != nil {
		if delErr := s.DB.DeleteMembership(ctx, membership.ID); delErr != nil {
			s.Logger.Error("BOOKING", fmt.Sprintf("failed to roll back membership %s: %v", membership.ID, delErr))
		}
		return nil, err
	}

	s.Logger.LogBooking("JOIN", membership.ID, fmt.Sprintf("user %s joined organisation %s", userID, orgID))
	s.publish(kafka.TopicMembershipCreated, membership.ID, membership)
	return &membership, nil
}

// publish streams a domain event; failures are logged and never fail the
// request.
func (s *Service) publish(topic, key string, payload interface{}) {
	if s.Kafka == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("marshal %s payload: %v", topic, err))
		return
	}
	if err := s.Kafka.Publish(topic, key, value); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish %s: %v", topic, err))
	}
}
