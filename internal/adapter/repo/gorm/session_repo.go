package gormrepo

import (
	"context"
	"errors"
	"time"

	"wildcraft/internal/adapter/repo/gorm/model"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) Create(ctx context.Context, rec ports.SessionRecord) error {
	status := rec.Status
	if status == "" {
		status = ports.SessionActive
	}
	m := model.GameSession{
		SessionID:  rec.ID,
		Status:     string(status),
		Resets:     int32(rec.Resets),
		StartedAt:  rec.StartedAt,
		EndedAt:    rec.EndedAt,
		DeathCause: string(rec.DeathCause),
	}
	res := dbFrom(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r SessionRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var m model.GameSession
	err := dbFrom(ctx, r.db).Where(&model.GameSession{SessionID: sessionID}).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SessionRecord{}, err
	}
	return ports.SessionRecord{
		ID:         m.SessionID,
		Status:     ports.SessionStatus(m.Status),
		Resets:     int(m.Resets),
		StartedAt:  m.StartedAt,
		EndedAt:    m.EndedAt,
		DeathCause: survival.DeathCause(m.DeathCause),
	}, nil
}

func (r SessionRepo) MarkReset(ctx context.Context, sessionID string, _ time.Time) error {
	return r.update(ctx, sessionID, map[string]any{
		"status":      string(ports.SessionActive),
		"resets":      gorm.Expr("resets + 1"),
		"ended_at":    nil,
		"death_cause": "",
	})
}

func (r SessionRepo) Close(ctx context.Context, sessionID string, cause survival.DeathCause, endedAt time.Time) error {
	return r.update(ctx, sessionID, map[string]any{
		"status":      string(ports.SessionOver),
		"death_cause": string(cause),
		"ended_at":    endedAt,
	})
}

func (r SessionRepo) update(ctx context.Context, sessionID string, updates map[string]any) error {
	res := dbFrom(ctx, r.db).
		Model(&model.GameSession{}).
		Where(&model.GameSession{SessionID: sessionID}).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
