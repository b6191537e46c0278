package models

import (
	"time"

	"github.com/google/uuid"
)

// Метод оценки времени в пути
const (
	EstimateMethodHaversine = "haversine_heuristic"
	EstimateMethodCorrected = "corrected_estimate"
)

// TravelEstimate представляет оценку пути от места происшествия до больницы.
// Записи не изменяются на месте: при пересчете вставляется новая,
// актуальная определяется по времени расчета.
type TravelEstimate struct {
	ReportID          uuid.UUID `json:"report_id"`
	HospitalID        uuid.UUID `json:"hospital_id"`
	DistanceMeters    float64   `json:"distance_meters"`
	TravelTimeSeconds float64   `json:"travel_time_seconds"`
	CongestionFactor  float64   `json:"congestion_factor"`
	Method            string    `json:"method"`
	EstimatedAt       time.Time `json:"estimated_at"`
}

// AdjustedSeconds возвращает время в пути с учетом фактора загруженности.
// Фактор хранится отдельно, чтобы его можно было проверить постфактум.
func (e *TravelEstimate) AdjustedSeconds() float64 {
	return e.TravelTimeSeconds * e.CongestionFactor
}

// Обоснование выбора больницы
const (
	RationaleBestTravelTime   = "best_travel_time"
	RationaleCapacityOverride = "capacity_override"
)

// AssignmentRecord представляет назначение обращения в больницу.
// Активно всегда не более одного назначения; при перенаправлении создается
// новая запись, прежняя сохраняется для аудита.
type AssignmentRecord struct {
	ID         int64     `json:"id"`
	ReportID   uuid.UUID `json:"report_id"`
	HospitalID uuid.UUID `json:"hospital_id"`
	Rationale  string    `json:"rationale"`
	Superseded bool      `json:"superseded"`
	AssignedAt time.Time `json:"assigned_at"`
}
