package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBaseTime() time.Time {
	return time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
}

// assertDensePositions проверяет, что позиции образуют плотную
// последовательность 1..k
func assertDensePositions(t *testing.T, snapshot *models.QueueSnapshot) {
	t.Helper()
	for i, e := range snapshot.Entries {
		assert.Equal(t, i+1, e.Position)
		assert.Equal(t, models.QueueStatusWaiting, e.Status)
	}
}

func TestInsert_AscendingCriticality(t *testing.T) {
	// Подготовка: поступления с возрастающей критичностью 1, 2, 3, 4
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	ids := make([]uuid.UUID, 4)
	for i := 0; i < 4; i++ {
		ids[i] = uuid.New()
		_, err := m.Insert(hospitalID, ids[i], models.CriticalityLevel(i+1), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Проверки: порядок поступления совпадает с порядком критичности
	snap := m.Snapshot(hospitalID)
	require.Len(t, snap.Entries, 4)
	assertDensePositions(t, snap)
	for i, e := range snap.Entries {
		assert.Equal(t, ids[i], e.ReportID)
		assert.Equal(t, models.CriticalityLevel(i+1), e.Criticality)
	}
}

func TestInsert_DescendingCriticality(t *testing.T) {
	// Подготовка: поступления с убывающей критичностью 4, 3, 2, 1
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	ids := make([]uuid.UUID, 4)
	for i := 0; i < 4; i++ {
		ids[i] = uuid.New()
		_, err := m.Insert(hospitalID, ids[i], models.CriticalityLevel(4-i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Проверки: каждое новое поступление встает в голову очереди
	snap := m.Snapshot(hospitalID)
	require.Len(t, snap.Entries, 4)
	assertDensePositions(t, snap)
	for i, e := range snap.Entries {
		assert.Equal(t, ids[3-i], e.ReportID)
		assert.Equal(t, models.CriticalityLevel(i+1), e.Criticality)
	}
}

func TestInsert_EqualCriticalityKeepsArrivalOrder(t *testing.T) {
	// Подготовка: три поступления одной критичности
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	ids := make([]uuid.UUID, 3)
	for i := 0; i < 3; i++ {
		ids[i] = uuid.New()
		_, err := m.Insert(hospitalID, ids[i], models.CriticalityUrgent, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Проверки: при равной критичности порядок по времени постановки
	snap := m.Snapshot(hospitalID)
	require.Len(t, snap.Entries, 3)
	for i, e := range snap.Entries {
		assert.Equal(t, ids[i], e.ReportID)
	}
}

func TestInsert_MoreCriticalJumpsAhead(t *testing.T) {
	// Подготовка: очередь из менее критичных, поступает угроза жизни
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	for i := 0; i < 3; i++ {
		_, err := m.Insert(hospitalID, uuid.New(), models.CriticalityLessUrgent, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	criticalID := uuid.New()
	entry, err := m.Insert(hospitalID, criticalID, models.CriticalityLifeThreatening, base.Add(10*time.Minute))
	require.NoError(t, err)

	// Проверки: критичное обращение в голове, остальные сдвинуты
	assert.Equal(t, 1, entry.Position)
	snap := m.Snapshot(hospitalID)
	assert.Equal(t, criticalID, snap.Entries[0].ReportID)
	assertDensePositions(t, snap)
}

func TestInsert_Duplicate(t *testing.T) {
	m := NewManager(nil)
	hospitalID := uuid.New()
	reportID := uuid.New()

	_, err := m.Insert(hospitalID, reportID, models.CriticalityUrgent, testBaseTime())
	require.NoError(t, err)

	_, err = m.Insert(hospitalID, reportID, models.CriticalityUrgent, testBaseTime())
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestDequeue_CompactsPositions(t *testing.T) {
	// Подготовка: очередь из четырех записей
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	ids := make([]uuid.UUID, 4)
	for i := 0; i < 4; i++ {
		ids[i] = uuid.New()
		_, err := m.Insert(hospitalID, ids[i], models.CriticalityUrgent, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Действие: вторая запись уходит на лечение
	entry, err := m.Dequeue(hospitalID, ids[1], models.QueueStatusInTreatment)
	require.NoError(t, err)

	// Проверки: запись исключена из ожидания, позиции уплотнены без разрыва
	assert.Equal(t, models.QueueStatusInTreatment, entry.Status)
	assert.Zero(t, entry.Position)

	snap := m.Snapshot(hospitalID)
	require.Len(t, snap.Entries, 3)
	assertDensePositions(t, snap)
	assert.Equal(t, ids[0], snap.Entries[0].ReportID)
	assert.Equal(t, ids[2], snap.Entries[1].ReportID)
	assert.Equal(t, ids[3], snap.Entries[2].ReportID)
}

func TestDequeue_NotFound(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Dequeue(uuid.New(), uuid.New(), models.QueueStatusRemoved)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRerank_DowngradeMovesBehindMoreCritical(t *testing.T) {
	// Подготовка: голова очереди с критичностью 1, позади записи с 3
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	headID := uuid.New()
	_, err := m.Insert(hospitalID, headID, models.CriticalityLifeThreatening, base)
	require.NoError(t, err)

	otherIDs := make([]uuid.UUID, 2)
	for i := 0; i < 2; i++ {
		otherIDs[i] = uuid.New()
		_, err := m.Insert(hospitalID, otherIDs[i], models.CriticalityUrgent, base.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}

	// Действие: повторный триаж понижает критичность головы до 4
	entry, err := m.Rerank(hospitalID, headID, models.CriticalityLessUrgent)
	require.NoError(t, err)

	// Проверки: запись ушла в хвост, позиции плотные
	assert.Equal(t, 3, entry.Position)
	snap := m.Snapshot(hospitalID)
	assert.Equal(t, otherIDs[0], snap.Entries[0].ReportID)
	assert.Equal(t, otherIDs[1], snap.Entries[1].ReportID)
	assert.Equal(t, headID, snap.Entries[2].ReportID)
	assertDensePositions(t, snap)
}

func TestRerank_UpgradeMovesAhead(t *testing.T) {
	// Подготовка
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	first := uuid.New()
	last := uuid.New()
	_, err := m.Insert(hospitalID, first, models.CriticalityUrgent, base)
	require.NoError(t, err)
	_, err = m.Insert(hospitalID, last, models.CriticalityNonUrgent, base.Add(time.Minute))
	require.NoError(t, err)

	// Действие: хвост становится угрозой жизни
	entry, err := m.Rerank(hospitalID, last, models.CriticalityLifeThreatening)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, 1, entry.Position)
	snap := m.Snapshot(hospitalID)
	assert.Equal(t, last, snap.Entries[0].ReportID)
	assert.Equal(t, first, snap.Entries[1].ReportID)
}

func TestRerank_NotFound(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Rerank(uuid.New(), uuid.New(), models.CriticalityUrgent)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMove_BetweenHospitals(t *testing.T) {
	// Подготовка: запись в очереди первой больницы
	m := NewManager(nil)
	from, to := uuid.New(), uuid.New()
	reportID := uuid.New()
	base := testBaseTime()

	_, err := m.Insert(from, reportID, models.CriticalityUrgent, base)
	require.NoError(t, err)
	_, err = m.Insert(from, uuid.New(), models.CriticalityUrgent, base.Add(time.Minute))
	require.NoError(t, err)
	_, err = m.Insert(to, uuid.New(), models.CriticalityLifeThreatening, base)
	require.NoError(t, err)

	// Действие
	entry, err := m.Move(from, to, reportID, models.CriticalityUrgent, base.Add(5*time.Minute))
	require.NoError(t, err)

	// Проверки: запись ровно в одной очереди, обе очереди плотные
	assert.Equal(t, to, entry.HospitalID)
	assert.Equal(t, 2, entry.Position)

	fromSnap := m.Snapshot(from)
	require.Len(t, fromSnap.Entries, 1)
	assertDensePositions(t, fromSnap)
	for _, e := range fromSnap.Entries {
		assert.NotEqual(t, reportID, e.ReportID)
	}

	toSnap := m.Snapshot(to)
	require.Len(t, toSnap.Entries, 2)
	assertDensePositions(t, toSnap)
	assert.Equal(t, reportID, toSnap.Entries[1].ReportID)
}

func TestMove_SameHospitalIsRerank(t *testing.T) {
	m := NewManager(nil)
	hospitalID := uuid.New()
	reportID := uuid.New()
	base := testBaseTime()

	_, err := m.Insert(hospitalID, uuid.New(), models.CriticalityUrgent, base)
	require.NoError(t, err)
	_, err = m.Insert(hospitalID, reportID, models.CriticalityNonUrgent, base.Add(time.Minute))
	require.NoError(t, err)

	entry, err := m.Move(hospitalID, hospitalID, reportID, models.CriticalityLifeThreatening, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Position)
	assert.Len(t, m.Snapshot(hospitalID).Entries, 2)
}

func TestMove_NotFound(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Move(uuid.New(), uuid.New(), uuid.New(), models.CriticalityUrgent, testBaseTime())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEstimatedWait_SumOfDurationsAhead(t *testing.T) {
	// Подготовка: критичности 1, 2, 3 в порядке очереди
	m := NewManager(DefaultTreatmentDurations())
	hospitalID := uuid.New()
	base := testBaseTime()

	ids := make([]uuid.UUID, 3)
	for i := 0; i < 3; i++ {
		ids[i] = uuid.New()
		_, err := m.Insert(hospitalID, ids[i], models.CriticalityLevel(i+1), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	// Проверки: голова не ждет, хвост ждет сумму лечения впереди стоящих
	wait, err := m.EstimatedWait(hospitalID, ids[0])
	require.NoError(t, err)
	assert.Zero(t, wait)

	wait, err = m.EstimatedWait(hospitalID, ids[2])
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute+35*time.Minute, wait)
}

func TestEstimatedWait_NotFound(t *testing.T) {
	m := NewManager(nil)
	_, err := m.EstimatedWait(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRestore_RebuildsOrderedQueue(t *testing.T) {
	// Подготовка: сохраненные записи в произвольном порядке, одна не ожидает
	m := NewManager(nil)
	hospitalID := uuid.New()
	base := testBaseTime()

	urgent := &models.QueueEntry{HospitalID: hospitalID, ReportID: uuid.New(), Position: 2, Status: models.QueueStatusWaiting, Criticality: models.CriticalityUrgent, EnteredAt: base}
	critical := &models.QueueEntry{HospitalID: hospitalID, ReportID: uuid.New(), Position: 1, Status: models.QueueStatusWaiting, Criticality: models.CriticalityLifeThreatening, EnteredAt: base.Add(time.Minute)}
	treated := &models.QueueEntry{HospitalID: hospitalID, ReportID: uuid.New(), Status: models.QueueStatusInTreatment, Criticality: models.CriticalityUrgent, EnteredAt: base}

	// Действие
	err := m.Restore(hospitalID, []*models.QueueEntry{urgent, critical, treated})
	require.NoError(t, err)

	// Проверки: восстановлены только ожидающие, порядок по критичности
	snap := m.Snapshot(hospitalID)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, critical.ReportID, snap.Entries[0].ReportID)
	assert.Equal(t, urgent.ReportID, snap.Entries[1].ReportID)
	assertDensePositions(t, snap)
}

func TestWaitingCount(t *testing.T) {
	m := NewManager(nil)
	hospitalID := uuid.New()

	assert.Zero(t, m.WaitingCount(hospitalID))
	_, err := m.Insert(hospitalID, uuid.New(), models.CriticalityUrgent, testBaseTime())
	require.NoError(t, err)
	assert.Equal(t, 1, m.WaitingCount(hospitalID))
}

func TestHalted_InitiallyFalse(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.Halted(uuid.New()))
}

func TestConcurrentInserts_KeepInvariant(t *testing.T) {
	// Подготовка: параллельные поступления в очереди двух больниц
	m := NewManager(nil)
	hospitalA, hospitalB := uuid.New(), uuid.New()
	base := testBaseTime()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hospital := hospitalA
			if i%2 == 0 {
				hospital = hospitalB
			}
			level := models.CriticalityLevel(i%5 + 1)
			_, err := m.Insert(hospital, uuid.New(), level, base.Add(time.Duration(i)*time.Second))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Проверки: обе очереди плотные и упорядоченные, ничего не потеряно
	for _, hospital := range []uuid.UUID{hospitalA, hospitalB} {
		snap := m.Snapshot(hospital)
		assert.Len(t, snap.Entries, 25)
		assertDensePositions(t, snap)
		for i := 1; i < len(snap.Entries); i++ {
			prev, cur := snap.Entries[i-1], snap.Entries[i]
			ordered := prev.Criticality.MoreCriticalThan(cur.Criticality) ||
				(prev.Criticality == cur.Criticality && !cur.EnteredAt.Before(prev.EnteredAt))
			assert.True(t, ordered)
		}
		assert.False(t, m.Halted(hospital))
	}
}

func TestConcurrentMoves_NoDeadlockOrLoss(t *testing.T) {
	// Подготовка: встречные переносы между двумя больницами
	m := NewManager(nil)
	hospitalA, hospitalB := uuid.New(), uuid.New()
	base := testBaseTime()

	idsA := make([]uuid.UUID, 10)
	idsB := make([]uuid.UUID, 10)
	for i := 0; i < 10; i++ {
		idsA[i] = uuid.New()
		idsB[i] = uuid.New()
		_, err := m.Insert(hospitalA, idsA[i], models.CriticalityUrgent, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		_, err = m.Insert(hospitalB, idsB[i], models.CriticalityUrgent, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := m.Move(hospitalA, hospitalB, idsA[i], models.CriticalityUrgent, base.Add(time.Hour))
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := m.Move(hospitalB, hospitalA, idsB[i], models.CriticalityUrgent, base.Add(time.Hour))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Проверки: суммарное число записей сохранилось, очереди согласованы
	snapA, snapB := m.Snapshot(hospitalA), m.Snapshot(hospitalB)
	assert.Equal(t, 20, len(snapA.Entries)+len(snapB.Entries))
	assertDensePositions(t, snapA)
	assertDensePositions(t, snapB)
}

func TestVerify_HaltsOnCorruption(t *testing.T) {
	// Подготовка: ломаем порядок напрямую, минуя публичный API
	m := NewManager(nil)
	hospitalID := uuid.New()

	_, err := m.Insert(hospitalID, uuid.New(), models.CriticalityUrgent, testBaseTime())
	require.NoError(t, err)
	_, err = m.Insert(hospitalID, uuid.New(), models.CriticalityUrgent, testBaseTime().Add(time.Minute))
	require.NoError(t, err)

	hq := m.queueFor(hospitalID)
	hq.mu.Lock()
	hq.entries[1].Criticality = models.CriticalityLifeThreatening
	hq.mu.Unlock()

	// Действие: следующая мутация обнаруживает нарушение
	_, err = m.Insert(hospitalID, uuid.New(), models.CriticalityNonUrgent, testBaseTime().Add(time.Minute))

	// Проверки: очередь остановлена, дальнейшие мутации отклоняются
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueConsistency)
	assert.True(t, m.Halted(hospitalID))

	_, err = m.Insert(hospitalID, uuid.New(), models.CriticalityUrgent, testBaseTime())
	assert.ErrorIs(t, err, ErrQueueHalted)
}
