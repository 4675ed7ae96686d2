package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"wildcraft/internal/adapter/repo/gorm/model"
	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		rows = append(rows, model.DomainEvent{
			SessionID:  sessionID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return dbFrom(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, filter ports.EventFilter) ([]survival.DomainEvent, error) {
	rows := []model.DomainEvent{}
	query := dbFrom(ctx, r.db).Where(&model.DomainEvent{SessionID: sessionID})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if !filter.Since.IsZero() {
		query = query.Where("occurred_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		query = query.Where("occurred_at <= ?", filter.Until)
	}
	query = query.Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: "occurred_at"}, Desc: true},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}})
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list events: %w: %v", ports.ErrUnavailable, err)
	}

	out := make([]survival.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, survival.DomainEvent{
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
