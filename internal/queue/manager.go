package queue

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/models"
)

var (
	// ErrQueueConsistency - нарушение инварианта очереди (дубликат позиции,
	// разрыв нумерации). Очередь больницы останавливается, состояние не
	// исправляется молча.
	ErrQueueConsistency = errors.New("queue consistency violation")

	// ErrQueueHalted - очередь больницы остановлена после нарушения инварианта
	ErrQueueHalted = errors.New("hospital queue halted")

	// ErrEntryNotFound - запись отсутствует в очереди больницы
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrDuplicateEntry - обращение уже стоит в очереди этой больницы
	ErrDuplicateEntry = errors.New("report already queued")
)

// TreatmentDurations - средняя длительность лечения по уровню критичности,
// используется для расчета ожидаемого времени ожидания
type TreatmentDurations map[models.CriticalityLevel]time.Duration

// DefaultTreatmentDurations возвращает длительности лечения по умолчанию
func DefaultTreatmentDurations() TreatmentDurations {
	return TreatmentDurations{
		models.CriticalityLifeThreatening: 45 * time.Minute,
		models.CriticalityEmergent:        35 * time.Minute,
		models.CriticalityUrgent:          25 * time.Minute,
		models.CriticalityLessUrgent:      15 * time.Minute,
		models.CriticalityNonUrgent:       10 * time.Minute,
	}
}

// hospitalQueue - очередь одной больницы со своим замком.
// Все мутации одной очереди взаимно исключены, очереди разных больниц
// не блокируют друг друга.
type hospitalQueue struct {
	mu      sync.RWMutex
	entries []*models.QueueEntry
	halted  bool
}

// Manager владеет упорядоченными очередями больниц
type Manager struct {
	mu        sync.RWMutex
	hospitals map[uuid.UUID]*hospitalQueue
	durations TreatmentDurations
}

// NewManager создает Manager с заданными длительностями лечения
func NewManager(durations TreatmentDurations) *Manager {
	if durations == nil {
		durations = DefaultTreatmentDurations()
	}
	return &Manager{
		hospitals: make(map[uuid.UUID]*hospitalQueue),
		durations: durations,
	}
}

func (m *Manager) queueFor(hospitalID uuid.UUID) *hospitalQueue {
	m.mu.RLock()
	hq, ok := m.hospitals[hospitalID]
	m.mu.RUnlock()
	if ok {
		return hq
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if hq, ok = m.hospitals[hospitalID]; !ok {
		hq = &hospitalQueue{}
		m.hospitals[hospitalID] = hq
	}
	return hq
}

// Insert ставит обращение в очередь больницы на позицию, определяемую
// критичностью (выше критичность - ближе к началу), при равной критичности -
// временем постановки
func (m *Manager) Insert(hospitalID, reportID uuid.UUID, criticality models.CriticalityLevel, enteredAt time.Time) (*models.QueueEntry, error) {
	hq := m.queueFor(hospitalID)
	hq.mu.Lock()
	defer hq.mu.Unlock()

	if hq.halted {
		return nil, ErrQueueHalted
	}
	if hq.indexOf(reportID) >= 0 {
		return nil, ErrDuplicateEntry
	}

	entry := &models.QueueEntry{
		HospitalID:  hospitalID,
		ReportID:    reportID,
		Status:      models.QueueStatusWaiting,
		Criticality: criticality,
		EnteredAt:   enteredAt,
	}
	hq.insertRanked(entry)

	if err := hq.verify(); err != nil {
		return nil, fmt.Errorf("insert of report %s into hospital %s: %w", reportID, hospitalID, err)
	}
	return entry.Clone(), nil
}

// Rerank перемещает ожидающую запись после изменения критичности.
// Единственный способ смены позиции, кроме уплотнения после удаления.
func (m *Manager) Rerank(hospitalID, reportID uuid.UUID, criticality models.CriticalityLevel) (*models.QueueEntry, error) {
	hq := m.queueFor(hospitalID)
	hq.mu.Lock()
	defer hq.mu.Unlock()

	if hq.halted {
		return nil, ErrQueueHalted
	}
	idx := hq.indexOf(reportID)
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	entry := hq.entries[idx]
	hq.entries = append(hq.entries[:idx], hq.entries[idx+1:]...)
	entry.Criticality = criticality
	hq.insertRanked(entry)

	if err := hq.verify(); err != nil {
		return nil, fmt.Errorf("rerank of report %s in hospital %s: %w", reportID, hospitalID, err)
	}
	return entry.Clone(), nil
}

// Dequeue убирает запись из ожидающей последовательности со статусом status
// (in_treatment либо removed) и уплотняет позиции записей позади нее
func (m *Manager) Dequeue(hospitalID, reportID uuid.UUID, status models.QueueStatus) (*models.QueueEntry, error) {
	hq := m.queueFor(hospitalID)
	hq.mu.Lock()
	defer hq.mu.Unlock()

	if hq.halted {
		return nil, ErrQueueHalted
	}
	idx := hq.indexOf(reportID)
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	entry := hq.entries[idx]
	hq.entries = append(hq.entries[:idx], hq.entries[idx+1:]...)
	hq.renumber()
	entry.Status = status
	entry.Position = 0

	if err := hq.verify(); err != nil {
		return nil, fmt.Errorf("dequeue of report %s from hospital %s: %w", reportID, hospitalID, err)
	}
	return entry.Clone(), nil
}

// Move атомарно переносит запись из очереди одной больницы в очередь другой.
// Обращение никогда не присутствует в двух очередях одновременно.
func (m *Manager) Move(fromHospital, toHospital, reportID uuid.UUID, criticality models.CriticalityLevel, enteredAt time.Time) (*models.QueueEntry, error) {
	if fromHospital == toHospital {
		return m.Rerank(fromHospital, reportID, criticality)
	}

	src, dst := m.queueFor(fromHospital), m.queueFor(toHospital)

	// Замки берутся в фиксированном порядке идентификаторов, чтобы встречные
	// переносы не взаимоблокировались
	first, second := src, dst
	if bytes.Compare(fromHospital[:], toHospital[:]) > 0 {
		first, second = dst, src
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if src.halted || dst.halted {
		return nil, ErrQueueHalted
	}
	idx := src.indexOf(reportID)
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	entry := src.entries[idx]
	src.entries = append(src.entries[:idx], src.entries[idx+1:]...)
	src.renumber()

	entry.HospitalID = toHospital
	entry.Criticality = criticality
	entry.EnteredAt = enteredAt
	dst.insertRanked(entry)

	if err := src.verify(); err != nil {
		return nil, fmt.Errorf("move of report %s out of hospital %s: %w", reportID, fromHospital, err)
	}
	if err := dst.verify(); err != nil {
		return nil, fmt.Errorf("move of report %s into hospital %s: %w", reportID, toHospital, err)
	}
	return entry.Clone(), nil
}

// Snapshot возвращает согласованный на момент вызова срез очереди больницы.
// Чтение не блокирует чтения и может идти параллельно с очередями других больниц.
func (m *Manager) Snapshot(hospitalID uuid.UUID) *models.QueueSnapshot {
	hq := m.queueFor(hospitalID)
	hq.mu.RLock()
	defer hq.mu.RUnlock()

	entries := make([]*models.QueueEntry, len(hq.entries))
	for i, e := range hq.entries {
		entries[i] = e.Clone()
	}
	return &models.QueueSnapshot{
		HospitalID: hospitalID,
		Entries:    entries,
		TakenAt:    time.Now(),
	}
}

// WaitingCount возвращает число ожидающих записей в очереди больницы
func (m *Manager) WaitingCount(hospitalID uuid.UUID) int {
	hq := m.queueFor(hospitalID)
	hq.mu.RLock()
	defer hq.mu.RUnlock()
	return len(hq.entries)
}

// EstimatedWait возвращает ожидаемое время ожидания записи: сумму средних
// длительностей лечения всех ожидающих строго впереди нее. Считается при
// чтении, не хранится.
func (m *Manager) EstimatedWait(hospitalID, reportID uuid.UUID) (time.Duration, error) {
	hq := m.queueFor(hospitalID)
	hq.mu.RLock()
	defer hq.mu.RUnlock()

	idx := hq.indexOf(reportID)
	if idx < 0 {
		return 0, ErrEntryNotFound
	}

	var wait time.Duration
	for _, e := range hq.entries[:idx] {
		wait += m.durations[e.Criticality]
	}
	return wait, nil
}

// Halted сообщает, остановлена ли очередь больницы
func (m *Manager) Halted(hospitalID uuid.UUID) bool {
	hq := m.queueFor(hospitalID)
	hq.mu.RLock()
	defer hq.mu.RUnlock()
	return hq.halted
}

// Restore наполняет очередь больницы сохраненными ожидающими записями
// при старте сервиса
func (m *Manager) Restore(hospitalID uuid.UUID, entries []*models.QueueEntry) error {
	hq := m.queueFor(hospitalID)
	hq.mu.Lock()
	defer hq.mu.Unlock()

	hq.entries = hq.entries[:0]
	for _, e := range entries {
		if e.Status != models.QueueStatusWaiting {
			continue
		}
		hq.insertRanked(e.Clone())
	}
	if err := hq.verify(); err != nil {
		return fmt.Errorf("restore of hospital %s: %w", hospitalID, err)
	}
	return nil
}

// ranksBefore сообщает, должна ли запись a стоять строго раньше b
func ranksBefore(a, b *models.QueueEntry) bool {
	if a.Criticality != b.Criticality {
		return a.Criticality.MoreCriticalThan(b.Criticality)
	}
	return a.EnteredAt.Before(b.EnteredAt)
}

// insertRanked вставляет запись на место, определяемое порядком
// (критичность, время постановки), и перенумеровывает позиции
func (hq *hospitalQueue) insertRanked(entry *models.QueueEntry) {
	idx := len(hq.entries)
	for i, e := range hq.entries {
		if ranksBefore(entry, e) {
			idx = i
			break
		}
	}
	hq.entries = append(hq.entries, nil)
	copy(hq.entries[idx+1:], hq.entries[idx:])
	hq.entries[idx] = entry
	hq.renumber()
}

func (hq *hospitalQueue) renumber() {
	for i, e := range hq.entries {
		e.Position = i + 1
	}
}

func (hq *hospitalQueue) indexOf(reportID uuid.UUID) int {
	for i, e := range hq.entries {
		if e.ReportID == reportID {
			return i
		}
	}
	return -1
}

// verify проверяет инварианты очереди: плотная нумерация 1..k без дубликатов
// и порядок по (критичность, время постановки). При нарушении очередь
// останавливается.
func (hq *hospitalQueue) verify() error {
	for i, e := range hq.entries {
		if e.Position != i+1 {
			hq.halted = true
			return fmt.Errorf("position %d at index %d: %w", e.Position, i, ErrQueueConsistency)
		}
		if i > 0 && ranksBefore(e, hq.entries[i-1]) {
			hq.halted = true
			return fmt.Errorf("ordering broken at position %d: %w", e.Position, ErrQueueConsistency)
		}
	}
	return nil
}
