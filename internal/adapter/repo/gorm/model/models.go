package model

import "time"

const (
	TableNameDomainEvent = "domain_events"
	TableNameGameSession = "game_sessions"
)

// DomainEvent mapped from table <domain_events>
type DomainEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	SessionID  string    `gorm:"column:session_id;not null" json:"session_id"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb" json:"payload"`
}

func (*DomainEvent) TableName() string {
	return TableNameDomainEvent
}

// GameSession mapped from table <game_sessions>
type GameSession struct {
	SessionID  string     `gorm:"column:session_id;primaryKey" json:"session_id"`
	Status     string     `gorm:"column:status;not null" json:"status"`
	Resets     int32      `gorm:"column:resets;not null" json:"resets"`
	StartedAt  time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt    *time.Time `gorm:"column:ended_at" json:"ended_at"`
	DeathCause string     `gorm:"column:death_cause" json:"death_cause"`
}

func (*GameSession) TableName() string {
	return TableNameGameSession
}
