package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus - закрытый тип статуса жизненного цикла обращения.
// Невалидный переход обнаруживается при конструировании, а не в рантайме.
type ReportStatus string

const (
	StatusSubmitted   ReportStatus = "submitted"
	StatusTriaged     ReportStatus = "triaged"
	StatusAssigned    ReportStatus = "assigned"
	StatusQueued      ReportStatus = "queued"
	StatusInTreatment ReportStatus = "in_treatment"
	StatusDischarged  ReportStatus = "discharged"
	StatusRemoved     ReportStatus = "removed"
)

// transitions - таблица допустимых переходов статуса
var transitions = map[ReportStatus][]ReportStatus{
	StatusSubmitted:   {StatusTriaged, StatusRemoved},
	StatusTriaged:     {StatusAssigned, StatusRemoved},
	StatusAssigned:    {StatusQueued, StatusRemoved},
	StatusQueued:      {StatusInTreatment, StatusDischarged, StatusRemoved},
	StatusInTreatment: {StatusDischarged, StatusRemoved},
}

// CanTransition сообщает, допустим ли переход из текущего статуса в next
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, является ли статус терминальным
func (s ReportStatus) IsTerminal() bool {
	return s == StatusDischarged || s == StatusRemoved
}

// CriticalityLevel - порядковый уровень критичности по шкале ESI, 1 - самый критичный
type CriticalityLevel int

const (
	CriticalityLifeThreatening CriticalityLevel = 1
	CriticalityEmergent        CriticalityLevel = 2
	CriticalityUrgent          CriticalityLevel = 3
	CriticalityLessUrgent      CriticalityLevel = 4
	CriticalityNonUrgent       CriticalityLevel = 5
)

// Valid проверяет, что уровень находится в диапазоне шкалы
func (c CriticalityLevel) Valid() bool {
	return c >= CriticalityLifeThreatening && c <= CriticalityNonUrgent
}

// MoreCriticalThan сообщает, что уровень строже (меньше по шкале), чем other
func (c CriticalityLevel) MoreCriticalThan(other CriticalityLevel) bool {
	return c < other
}

// PatientReport представляет обращение о пациенте, поступившее в систему.
// Координаты могут отсутствовать; критичность появляется после триажа.
type PatientReport struct {
	ID               uuid.UUID         `json:"id"`
	Classification   string            `json:"classification"`
	PatientStatus    string            `json:"patient_status"`
	Latitude         *float64          `json:"latitude,omitempty"`
	Longitude        *float64          `json:"longitude,omitempty"`
	PatientContact   string            `json:"patient_contact,omitempty"`
	SubmitterContact string            `json:"submitter_contact,omitempty"`
	Status           ReportStatus      `json:"status"`
	Criticality      *CriticalityLevel `json:"criticality,omitempty"`
	HospitalID       *uuid.UUID        `json:"hospital_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// HasCoordinates сообщает, известны ли координаты места происшествия
func (r *PatientReport) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
