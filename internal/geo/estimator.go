package geo

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shenikar/emergency_triage_system/internal/models"
)

// ErrInvalidCoordinates возвращается при координатах вне допустимого диапазона
var ErrInvalidCoordinates = errors.New("invalid coordinates")

const (
	earthRadiusMeters = 6371000.0

	// Границы для отсечения вырожденных оценок времени в пути
	minTravelMinutes = 5.0
	maxTravelMinutes = 120.0
	minMinutesPerKm  = 1.5
	maxMinutesPerKm  = 4.0
)

// SpeedBucket - средняя скорость для зоны, подбираемой по ключевым словам
// в названии или регионе больницы
type SpeedBucket struct {
	Keywords []string
	SpeedKmh float64
}

// Policy - таблица эвристик оценки времени в пути.
// Подбор зоны по названию больницы ненадежен для больниц вне известного
// набора, поэтому таблица подменяема, а не зашита в логику.
type Policy struct {
	Buckets         []SpeedBucket
	DefaultSpeedKmh float64

	WeekendFactor  float64
	RushHourFactor float64
	NightFactor    float64
}

// DefaultPolicy возвращает таблицу скоростей и факторов загруженности по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		Buckets: []SpeedBucket{
			// Плотная городская застройка
			{Keywords: []string{"kingston", "university", "downtown"}, SpeedKmh: 25},
			// Умеренная загруженность
			{Keywords: []string{"spanish town", "portmore", "montego bay"}, SpeedKmh: 30},
		},
		DefaultSpeedKmh: 40,
		WeekendFactor:   0.85,
		RushHourFactor:  1.3,
		NightFactor:     0.8,
	}
}

// speedFor подбирает скорость по названию и региону больницы
func (p Policy) speedFor(hospital *models.Hospital) float64 {
	haystack := strings.ToLower(hospital.Name + " " + hospital.Region)
	for _, bucket := range p.Buckets {
		for _, kw := range bucket.Keywords {
			if strings.Contains(haystack, kw) {
				return bucket.SpeedKmh
			}
		}
	}
	return p.DefaultSpeedKmh
}

// CongestionFactor возвращает множитель загруженности для момента времени t
func (p Policy) CongestionFactor(t time.Time) float64 {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return p.WeekendFactor
	}
	h := t.Hour()
	if (h >= 7 && h < 9) || (h >= 16 && h < 18) {
		return p.RushHourFactor
	}
	if h >= 22 || h < 6 {
		return p.NightFactor
	}
	return 1.0
}

// Estimator вычисляет расстояние и время в пути до больницы.
// Не имеет состояния, вызовы полностью параллелизуемы.
type Estimator struct {
	policy Policy
	now    func() time.Time
}

// NewEstimator создает Estimator с заданной таблицей эвристик
func NewEstimator(policy Policy) *Estimator {
	return &Estimator{
		policy: policy,
		now:    time.Now,
	}
}

// NewEstimatorWithClock создает Estimator с подменяемыми часами для тестов
func NewEstimatorWithClock(policy Policy, now func() time.Time) *Estimator {
	return &Estimator{
		policy: policy,
		now:    now,
	}
}

// Estimate возвращает оценку пути от точки происшествия до больницы.
// Результат детерминирован для фиксированных входов и момента времени.
func (e *Estimator) Estimate(originLat, originLon float64, hospital *models.Hospital) (*models.TravelEstimate, error) {
	if err := ValidateCoordinates(originLat, originLon); err != nil {
		return nil, err
	}
	if err := ValidateCoordinates(hospital.Latitude, hospital.Longitude); err != nil {
		return nil, err
	}

	distance := HaversineDistance(originLat, originLon, hospital.Latitude, hospital.Longitude)
	distanceKm := distance / 1000.0

	speed := e.policy.speedFor(hospital)
	baseMinutes := distanceKm / speed * 60.0

	// Отсекаем вырожденно малые и патологически большие оценки.
	// Верхняя граница применяется последней и побеждает при пересечении
	// границ, но никогда не опускается ниже минимального времени выезда.
	method := models.EstimateMethodHaversine
	minutes := baseMinutes
	if low := math.Max(minTravelMinutes, distanceKm*minMinutesPerKm); minutes < low {
		minutes = low
		method = models.EstimateMethodCorrected
	}
	if high := math.Min(maxTravelMinutes, math.Max(minTravelMinutes, distanceKm*maxMinutesPerKm)); minutes > high {
		minutes = high
		method = models.EstimateMethodCorrected
	}

	now := e.now()
	return &models.TravelEstimate{
		HospitalID:        hospital.ID,
		DistanceMeters:    distance,
		TravelTimeSeconds: minutes * 60.0,
		CongestionFactor:  e.policy.CongestionFactor(now),
		Method:            method,
		EstimatedAt:       now,
	}, nil
}

// HaversineDistance возвращает расстояние по дуге большого круга в метрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dPhi := (lat2 - lat1) * math.Pi / 180.0
	dLambda := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// ValidateCoordinates проверяет, что координаты лежат в допустимом диапазоне
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
