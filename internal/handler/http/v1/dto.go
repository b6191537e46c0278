package v1

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReportRequest DTO для приема обращения
// @Description DTO для приема обращения о пациенте
type SubmitReportRequest struct {
	Classification   string   `json:"classification" validate:"required,min=2,max=255"`
	PatientStatus    string   `json:"patient_status,omitempty" validate:"max=1024"`
	Latitude         *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	PatientContact   string   `json:"patient_contact,omitempty" validate:"max=255"`
	SubmitterContact string   `json:"submitter_contact,omitempty" validate:"max=255"`
	Criticality      *int     `json:"criticality,omitempty" validate:"omitempty,min=1,max=5"`
}

// TriageRequest DTO для результата триажа
// @Description DTO для фиксации критичности обращения
type TriageRequest struct {
	Criticality int `json:"criticality" validate:"required,min=1,max=5"`
}

// CompleteRequest DTO для завершения обращения
// @Description DTO для завершения обращения
type CompleteRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=discharged removed"`
}

// ReportResponse DTO для ответа с информацией об обращении
// @Description DTO для ответа с информацией об обращении
type ReportResponse struct {
	ID               uuid.UUID  `json:"id"`
	Classification   string     `json:"classification"`
	PatientStatus    string     `json:"patient_status,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	PatientContact   string     `json:"patient_contact,omitempty"`
	SubmitterContact string     `json:"submitter_contact,omitempty"`
	Status           string     `json:"status"`
	Criticality      *int       `json:"criticality,omitempty"`
	HospitalID       *uuid.UUID `json:"hospital_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// QueueEntryResponse DTO для записи очереди
// @Description DTO для записи очереди больницы
type QueueEntryResponse struct {
	ReportID             uuid.UUID `json:"report_id"`
	Position             int       `json:"position"`
	Criticality          int       `json:"criticality"`
	Status               string    `json:"status"`
	EnteredAt            time.Time `json:"entered_at"`
	EstimatedWaitSeconds float64   `json:"estimated_wait_seconds"`
}

// QueueSnapshotResponse DTO для среза очереди больницы
// @Description DTO для согласованного среза очереди больницы
type QueueSnapshotResponse struct {
	HospitalID uuid.UUID             `json:"hospital_id"`
	TakenAt    time.Time             `json:"taken_at"`
	Entries    []*QueueEntryResponse `json:"entries"`
}

// HospitalResponse DTO для больницы из справочника
// @Description DTO для больницы из справочника
type HospitalResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Region        string    `json:"region,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	MaxPatients   int       `json:"max_patients"`
	SpecialtyTags []string  `json:"specialty_tags,omitempty"`
}

// RetryResponse DTO для результата повторного подбора
// @Description DTO для результата повторного подбора ожидающих обращений
type RetryResponse struct {
	Assigned int `json:"assigned"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ReportCount int `json:"report_count"`
}
