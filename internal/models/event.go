package models

import (
	"time"
)

// Типы событий реального времени
const (
	EventQueueUpdate         = "queue:update"
	EventHospitalQueueUpdate = "hospital:queue:update"
	EventStatusUpdate        = "status:update"
	EventDoctorAssigned      = "doctor:assigned"
	EventPatientNew          = "patient:new"
	EventTreatmentReady      = "treatment:ready"
	EventSystemAlert         = "system:alert"
)

// EventLogEntry представляет запись журнала событий.
// Журнал только дописывается, записи не обновляются и не удаляются.
type EventLogEntry struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	EventType  string    `json:"event_type"`
	Payload    []byte    `json:"payload,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
