package replay

import "wildcraft/internal/domain/survival"

type Request struct {
	SessionID    string
	Limit        int
	Type         string
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events       []survival.DomainEvent `json:"events"`
	CountsByType map[string]int         `json:"counts_by_type"`
	// LatestVitals is the most recent vitals reading found in the returned events.
	LatestVitals *survival.Vitals `json:"latest_vitals,omitempty"`
}
