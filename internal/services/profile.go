package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-profile/internal/logger"
	"github.com/sbilibin2017/gw-user-profile/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=services

// ProfileGetter loads the current profile snapshot of a user.
type ProfileGetter interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// HistoryLister lists committed history rows.
type HistoryLister interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.UserHistory, error)
}

// ProfileApplier atomically persists a profile and its changes.
type ProfileApplier interface {
	Apply(ctx context.Context, userID int64, changes []models.FieldChange, profile models.UserProfile) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProfileService reads profiles and applies partial updates with an audit trail.
type ProfileService struct {
	profiles    ProfileGetter
	histories   HistoryLister
	applier     ProfileApplier
	kafkaWriter KafkaWriter
}

// NewProfileService creates a new ProfileService. kafkaWriter may be nil.
func NewProfileService(profiles ProfileGetter, histories HistoryLister, applier ProfileApplier, kafkaWriter KafkaWriter) *ProfileService {
	return &ProfileService{
		profiles:    profiles,
		histories:   histories,
		applier:     applier,
		kafkaWriter: kafkaWriter,
	}
}

// Get returns the user together with the profile.
func (s *ProfileService) Get(ctx context.Context, identity models.Identity) (*models.UserWithProfile, error) {
	profile, err := s.load(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &models.UserWithProfile{Identity: identity, Profile: *profile}, nil
}

// Update applies the set slots of update and returns the recorded changes.
// When nothing differs from the stored profile no write happens at all.
func (s *ProfileService) Update(ctx context.Context, userID int64, update models.ProfileUpdate) ([]models.FieldChange, error) {
	snapshot, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes := Diff(*snapshot, update)
	if len(changes) == 0 {
		logger.FromContext(ctx).Infow("profile update is a no-op", "user_id", userID)
		return nil, nil
	}

	if err := s.applier.Apply(ctx, userID, changes, snapshot.Merge(update)); err != nil {
		return nil, err
	}

	s.publishChanges(ctx, userID, changes)
	return changes, nil
}

// History returns the user's history rows, newest first.
func (s *ProfileService) History(ctx context.Context, userID int64) ([]models.UserHistory, error) {
	histories, err := s.histories.ListByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list histories", "user_id", userID, "error", err)
		return nil, err
	}
	return histories, nil
}

func (s *ProfileService) load(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get profile", "user_id", userID, "error", err)
		return nil, err
	}
	if profile == nil {
		logger.FromContext(ctx).Errorw("user has no profile", "user_id", userID)
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// publishChanges sends a profile.updated event. The update is already
// committed, so failures are only logged.
func (s *ProfileService) publishChanges(ctx context.Context, userID int64, changes []models.FieldChange) {
	log := logger.FromContext(ctx)

	if s.kafkaWriter == nil {
		log.Debugw("Kafka writer not configured, skipping publishing", "user_id", userID)
		return
	}

	event := models.ProfileUpdatedEvent{
		EventID:   uuid.NewString(),
		UserID:    userID,
		Changes:   changes,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("failed to marshal profile event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: data,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		log.Errorw("failed to publish profile event", "event_id", event.EventID, "error", err)
		return
	}
	log.Infow("profile event published", "event_id", event.EventID, "changes", len(changes))
}
