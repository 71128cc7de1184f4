package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/beastgym/apiserver/internal/mq"
	"github.com/beastgym/apiserver/types"
)

// SessionRepository defines persistence operations for class sessions.
type SessionRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.ClassSession, int, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]types.ClassSession, error)
	Get(ctx context.Context, id int) (types.ClassSession, error)
	Create(ctx context.Context, session types.ClassSession) (types.ClassSession, error)
	Update(ctx context.Context, session types.ClassSession) (types.ClassSession, error)
	Delete(ctx context.Context, id int) error
}

// ErrInvalidTimeRange is returned when a session's end does not come
// after its start.
var ErrInvalidTimeRange = errors.New("session must end after it starts")

// SessionService encapsulates class-schedule use-cases. Schedule changes
// are announced on the event bus; publish failures are logged and never
// surfaced to the caller.
type SessionService struct {
	repo SessionRepository
	bus  *mq.Bus
}

func NewSessionService(repo SessionRepository, bus *mq.Bus) *SessionService {
	return &SessionService{repo: repo, bus: bus}
}

func (s *SessionService) List(ctx context.Context, offset, limit int) ([]types.ClassSession, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *SessionService) ListByTrainer(ctx context.Context, trainerID int) ([]types.ClassSession, error) {
	return s.repo.ListByTrainer(ctx, trainerID)
}

func (s *SessionService) Get(ctx context.Context, id int) (types.ClassSession, error) {
	return s.repo.Get(ctx, id)
}

func (s *SessionService) Create(ctx context.Context, session types.ClassSession) (types.ClassSession, error) {
	if !session.EndsAt.After(session.StartsAt) {
		return types.ClassSession{}, ErrInvalidTimeRange
	}
	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return types.ClassSession{}, err
	}
	s.announce(ctx, mq.EventSessionCreated, created)
	return created, nil
}

func (s *SessionService) Update(ctx context.Context, session types.ClassSession) (types.ClassSession, error) {
	if !session.EndsAt.After(session.StartsAt) {
		return types.ClassSession{}, ErrInvalidTimeRange
	}
	updated, err := s.repo.Update(ctx, session)
	if err != nil {
		return types.ClassSession{}, err
	}
	s.announce(ctx, mq.EventSessionUpdated, updated)
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id int) error {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, mq.EventSessionDeleted, session)
	return nil
}

func (s *SessionService) announce(ctx context.Context, eventType string, session types.ClassSession) {
	_, err := s.bus.PublishScheduleEvent(ctx, mq.ScheduleEvent{
		Type:      eventType,
		SessionID: session.ID,
		TrainerID: session.TrainerID,
		Title:     session.Title,
		StartsAt:  session.StartsAt,
		EndsAt:    session.EndsAt,
	})
	if err != nil {
		slog.Warn("failed to publish schedule event",
			slog.String("type", eventType),
			slog.Int("session_id", session.ID),
			slog.Any("error", err),
		)
	}
}
