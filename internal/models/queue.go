package models

import (
	"time"

	"github.com/google/uuid"
)

// QueueStatus - статус записи в очереди больницы
type QueueStatus string

const (
	QueueStatusWaiting     QueueStatus = "waiting"
	QueueStatusInTreatment QueueStatus = "in_treatment"
	QueueStatusRemoved     QueueStatus = "removed"
)

// QueueEntry представляет запись в очереди больницы.
// Позиции ожидающих записей образуют плотную последовательность 1..k,
// упорядоченную по критичности, затем по времени постановки в очередь.
type QueueEntry struct {
	HospitalID  uuid.UUID        `json:"hospital_id"`
	ReportID    uuid.UUID        `json:"report_id"`
	Position    int              `json:"position"`
	Status      QueueStatus      `json:"status"`
	Criticality CriticalityLevel `json:"criticality"`
	EnteredAt   time.Time        `json:"entered_at"`
}

// Clone возвращает независимую копию записи
func (e *QueueEntry) Clone() *QueueEntry {
	c := *e
	return &c
}

// QueueSnapshot - согласованный срез очереди одной больницы на момент чтения
type QueueSnapshot struct {
	HospitalID uuid.UUID     `json:"hospital_id"`
	Entries    []*QueueEntry `json:"entries"`
	TakenAt    time.Time     `json:"taken_at"`
}
