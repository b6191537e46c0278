package assignment

import (
	"errors"
	"sort"
	"time"

	"github.com/shenikar/emergency_triage_system/internal/models"
)

// ErrNoEligibleHospital возвращается, когда ни одна больница не проходит
// фильтр вместимости или ни для одной не известны координаты
var ErrNoEligibleHospital = errors.New("no eligible hospital")

// Candidate - больница-кандидат с оценкой пути и текущей загрузкой очереди
type Candidate struct {
	Hospital    *models.Hospital
	Estimate    *models.TravelEstimate
	CurrentLoad int
}

// Selector выбирает больницу для обращения по времени в пути
// с учетом вместимости и критичности
type Selector struct {
	overrideThreshold models.CriticalityLevel
	now               func() time.Time
}

// NewSelector создает Selector. Обращения с критичностью не ниже threshold
// (угроза жизни) игнорируют ограничение вместимости.
func NewSelector(threshold models.CriticalityLevel) *Selector {
	return &Selector{
		overrideThreshold: threshold,
		now:               time.Now,
	}
}

// Select ранжирует кандидатов и возвращает назначение для обращения.
// Правило: скорректированное время в пути по возрастанию, при равенстве -
// запас вместимости по убыванию. Больница на пределе вместимости исключается,
// если критичность не дает права на переопределение.
func (s *Selector) Select(report *models.PatientReport, candidates []Candidate) (*models.AssignmentRecord, error) {
	override := report.Criticality != nil && *report.Criticality <= s.overrideThreshold

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Hospital == nil || c.Estimate == nil {
			continue
		}
		if !override && c.Hospital.AtCapacity(c.CurrentLoad) {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleHospital
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		ti, tj := eligible[i].Estimate.AdjustedSeconds(), eligible[j].Estimate.AdjustedSeconds()
		if ti != tj {
			return ti < tj
		}
		return eligible[i].Hospital.Headroom(eligible[i].CurrentLoad) >
			eligible[j].Hospital.Headroom(eligible[j].CurrentLoad)
	})

	best := eligible[0]
	rationale := models.RationaleBestTravelTime
	if override && best.Hospital.AtCapacity(best.CurrentLoad) {
		rationale = models.RationaleCapacityOverride
	}

	return &models.AssignmentRecord{
		ReportID:   report.ID,
		HospitalID: best.Hospital.ID,
		Rationale:  rationale,
		AssignedAt: s.now(),
	}, nil
}
