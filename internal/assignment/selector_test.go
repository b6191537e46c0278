package assignment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate(name string, maxPatients, load int, travelSeconds float64) Candidate {
	return Candidate{
		Hospital: &models.Hospital{
			ID:          uuid.New(),
			Name:        name,
			MaxPatients: maxPatients,
		},
		Estimate: &models.TravelEstimate{
			TravelTimeSeconds: travelSeconds,
			CongestionFactor:  1.0,
		},
		CurrentLoad: load,
	}
}

func newTriagedReport(criticality models.CriticalityLevel) *models.PatientReport {
	return &models.PatientReport{
		ID:          uuid.New(),
		Status:      models.StatusTriaged,
		Criticality: &criticality,
	}
}

func TestSelect_PicksShortestAdjustedTravelTime(t *testing.T) {
	// Подготовка
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)
	near := newCandidate("Near Hospital", 10, 0, 600)
	far := newCandidate("Far Hospital", 10, 0, 1800)

	// Действие
	record, err := selector.Select(report, []Candidate{far, near})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, near.Hospital.ID, record.HospitalID)
	assert.Equal(t, report.ID, record.ReportID)
	assert.Equal(t, models.RationaleBestTravelTime, record.Rationale)
}

func TestSelect_CongestionChangesRanking(t *testing.T) {
	// Подготовка: ближняя больница в пробке проигрывает дальней
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)

	congested := newCandidate("Downtown Hospital", 10, 0, 900)
	congested.Estimate.CongestionFactor = 1.3
	free := newCandidate("Suburban Hospital", 10, 0, 1000)
	free.Estimate.CongestionFactor = 0.8

	// Действие
	record, err := selector.Select(report, []Candidate{congested, free})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, free.Hospital.ID, record.HospitalID)
}

func TestSelect_TieBreakByHeadroom(t *testing.T) {
	// Подготовка: при равном времени выигрывает больший запас вместимости
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)

	crowded := newCandidate("Crowded Hospital", 10, 8, 600)
	spacious := newCandidate("Spacious Hospital", 10, 2, 600)

	// Действие
	record, err := selector.Select(report, []Candidate{crowded, spacious})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, spacious.Hospital.ID, record.HospitalID)
}

func TestSelect_ExcludesHospitalAtCapacity(t *testing.T) {
	// Подготовка: ближайшая больница заполнена
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)

	full := newCandidate("Full Hospital", 5, 5, 300)
	open := newCandidate("Open Hospital", 5, 1, 900)

	// Действие
	record, err := selector.Select(report, []Candidate{full, open})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, open.Hospital.ID, record.HospitalID)
}

func TestSelect_CriticalityOverridesCapacity(t *testing.T) {
	// Подготовка: угроза жизни, единственная больница на пределе
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityLifeThreatening)

	full := newCandidate("Full Hospital", 5, 5, 300)

	// Действие
	record, err := selector.Select(report, []Candidate{full})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, full.Hospital.ID, record.HospitalID)
	assert.Equal(t, models.RationaleCapacityOverride, record.Rationale)
}

func TestSelect_NoEligibleHospital(t *testing.T) {
	// Подготовка: все больницы заполнены, критичность обычная
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityNonUrgent)

	full1 := newCandidate("Full Hospital A", 3, 3, 300)
	full2 := newCandidate("Full Hospital B", 3, 4, 600)

	// Действие
	record, err := selector.Select(report, []Candidate{full1, full2})

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEligibleHospital)
	assert.Nil(t, record)
}

func TestSelect_NoCandidates(t *testing.T) {
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)

	_, err := selector.Select(report, nil)
	assert.ErrorIs(t, err, ErrNoEligibleHospital)
}

func TestSelect_SkipsCandidatesWithoutEstimate(t *testing.T) {
	// Подготовка: больница без оценки пути не участвует в ранжировании
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)

	broken := Candidate{Hospital: &models.Hospital{ID: uuid.New(), Name: "No Estimate"}}
	valid := newCandidate("Valid Hospital", 5, 0, 1200)

	// Действие
	record, err := selector.Select(report, []Candidate{broken, valid})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, valid.Hospital.ID, record.HospitalID)
}

func TestSelect_AssignedAtIsSet(t *testing.T) {
	selector := NewSelector(models.CriticalityLifeThreatening)
	report := newTriagedReport(models.CriticalityUrgent)
	candidate := newCandidate("Hospital", 5, 0, 600)

	before := time.Now()
	record, err := selector.Select(report, []Candidate{candidate})
	require.NoError(t, err)

	assert.False(t, record.AssignedAt.Before(before))
	assert.False(t, record.Superseded)
}
