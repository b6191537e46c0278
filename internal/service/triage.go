package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_triage_system/internal/assignment"
	"github.com/shenikar/emergency_triage_system/internal/config"
	"github.com/shenikar/emergency_triage_system/internal/eventbus"
	"github.com/shenikar/emergency_triage_system/internal/geo"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/notify"
	"github.com/shenikar/emergency_triage_system/internal/queue"
	"github.com/sirupsen/logrus"
)

// ErrStaleAssignment - перенаправление проиграло гонку параллельному удалению
// и не восстановилось после повторного чтения состояния
var ErrStaleAssignment = errors.New("stale assignment")

// ErrInvalidTransition - недопустимый переход статуса жизненного цикла
var ErrInvalidTransition = errors.New("invalid status transition")

// ReportRepository определяет контракт для работы с бд обращений
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.PatientReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.PatientReport, error)
	UpdateReport(ctx context.Context, report *models.PatientReport) error
	ListPendingReports(ctx context.Context) ([]*models.PatientReport, error)
	SaveTriageResult(ctx context.Context, reportID uuid.UUID, criticality models.CriticalityLevel) error
	SaveTravelEstimate(ctx context.Context, estimate *models.TravelEstimate) error
	CreateAssignment(ctx context.Context, record *models.AssignmentRecord) error
	ReplaceHospitalQueue(ctx context.Context, hospitalID uuid.UUID, entries []*models.QueueEntry, affected *models.QueueEntry) error
	LoadWaitingQueues(ctx context.Context) (map[uuid.UUID][]*models.QueueEntry, error)
	AppendEventLog(ctx context.Context, entry *models.EventLogEntry) error
	GetReportStats(ctx context.Context, minutes int) (int, error)
}

// HospitalRepository определяет контракт для чтения справочника больниц
type HospitalRepository interface {
	ListHospitals(ctx context.Context) ([]*models.Hospital, error)
	GetHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
}

// EventPublisher определяет контракт публикации событий реального времени
type EventPublisher interface {
	Publish(topic, eventType string, payload interface{})
}

// QueueView - срез очереди больницы с рассчитанным временем ожидания
type QueueView struct {
	Snapshot *models.QueueSnapshot
	Waits    map[uuid.UUID]time.Duration
}

// TriageService определяет контракт бизнес-логики триажа и очередей
type TriageService interface {
	SubmitReport(ctx context.Context, report *models.PatientReport) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.PatientReport, error)
	TriageReport(ctx context.Context, reportID uuid.UUID, criticality models.CriticalityLevel) (*models.PatientReport, error)
	StartTreatment(ctx context.Context, reportID uuid.UUID) (*models.PatientReport, error)
	CompleteReport(ctx context.Context, reportID uuid.UUID, outcome models.ReportStatus) (*models.PatientReport, error)
	ReassignReport(ctx context.Context, reportID uuid.UUID) (*models.PatientReport, error)
	RetryPending(ctx context.Context) (int, error)
	GetHospitalQueue(ctx context.Context, hospitalID uuid.UUID) (*QueueView, error)
	ListHospitals(ctx context.Context) ([]*models.Hospital, error)
	GetStats(ctx context.Context) (int, error)
	RestoreQueues(ctx context.Context) error
}

type triageService struct {
	reportRepo   ReportRepository
	hospitalRepo HospitalRepository
	queues       *queue.Manager
	estimator    *geo.Estimator
	selector     *assignment.Selector
	bus          EventPublisher
	notifier     notify.NotificationPublisher
	logger       *logrus.Logger
	cfg          *config.Config

	// Ревизии обращений для вытеснения устаревших вычислений назначения:
	// результат, вычисленный для старой ревизии, отбрасывается, а не применяется
	revMu     sync.Mutex
	revisions map[uuid.UUID]uint64
}

func NewTriageService(
	reportRepo ReportRepository,
	hospitalRepo HospitalRepository,
	queues *queue.Manager,
	estimator *geo.Estimator,
	selector *assignment.Selector,
	bus EventPublisher,
	notifier notify.NotificationPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) TriageService {
	return &triageService{
		reportRepo:   reportRepo,
		hospitalRepo: hospitalRepo,
		queues:       queues,
		estimator:    estimator,
		selector:     selector,
		bus:          bus,
		notifier:     notifier,
		logger:       logger,
		cfg:          cfg,
		revisions:    make(map[uuid.UUID]uint64),
	}
}

// SubmitReport принимает обращение. Структурно невалидный ввод отклоняется,
// обращение без немедленного назначения принимается и остается в ожидании.
func (s *triageService) SubmitReport(ctx context.Context, report *models.PatientReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "triage",
		"method":  "SubmitReport",
	})
	log.Info("Accepting a new patient report")

	if report.HasCoordinates() {
		if err := geo.ValidateCoordinates(*report.Latitude, *report.Longitude); err != nil {
			log.WithError(err).Warn("Report submitted with malformed coordinates")
			return err
		}
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.Status = models.StatusSubmitted

	pendingCriticality := report.Criticality
	report.Criticality = nil

	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}
	s.audit(ctx, "report", report.ID.String(), models.EventStatusUpdate, report)

	log = log.WithField("report_id", report.ID)
	log.Info("Report accepted")

	// Обращение пришло уже с результатом триажа - продолжаем конвейер сразу
	if pendingCriticality != nil {
		if _, err := s.TriageReport(ctx, report.ID, *pendingCriticality); err != nil {
			return err
		}
	}
	return nil
}

// GetReport получает обращение по ID
func (s *triageService) GetReport(ctx context.Context, id uuid.UUID) (*models.PatientReport, error) {
	report, err := s.reportRepo.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	return report, nil
}

// TriageReport фиксирует критичность обращения. Для обращения в очереди это
// переранжирование; для нового - запуск подбора больницы.
func (s *triageService) TriageReport(ctx context.Context, reportID uuid.UUID, criticality models.CriticalityLevel) (*models.PatientReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "triage",
		"method":      "TriageReport",
		"report_id":   reportID,
		"criticality": criticality,
	})
	log.Info("Applying triage result")

	if !criticality.Valid() {
		return nil, fmt.Errorf("service: criticality %d out of range", criticality)
	}

	report, err := s.reportRepo.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report for triage: %w", err)
	}

	// Недопустимый переход отклоняется до любой записи в хранилище,
	// чтобы triage_results не разошелся с карточкой обращения
	rerank := report.Status == models.StatusQueued && report.HospitalID != nil
	reassess := report.Status == models.StatusTriaged
	if !rerank && !reassess && !report.Status.CanTransition(models.StatusTriaged) {
		return nil, fmt.Errorf("service: report %s in status %s: %w", reportID, report.Status, ErrInvalidTransition)
	}

	// Более поздний результат триажа вытесняет незавершенное назначение
	s.bumpRevision(reportID)

	if err := s.reportRepo.SaveTriageResult(ctx, reportID, criticality); err != nil {
		log.WithError(err).Error("Failed to save triage result")
		return nil, fmt.Errorf("service: could not save triage result: %w", err)
	}

	report.Criticality = &criticality

	// Ожидающая запись в очереди: смена критичности переранжирует ее
	if rerank {
		return s.rerankQueued(ctx, report, criticality)
	}

	// Повторная оценка обращения без больницы обновляет критичность
	// и перезапускает подбор
	report.Status = models.StatusTriaged
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		log.WithError(err).Error("Failed to update report after triage")
		return nil, fmt.Errorf("service: could not update report: %w", err)
	}
	s.audit(ctx, "report", report.ID.String(), models.EventStatusUpdate, report)
	s.bus.Publish(eventbus.PatientTopic(report.ID), models.EventStatusUpdate, report)

	if err := s.assignAndEnqueue(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// rerankQueued переставляет ожидающую запись после смены критичности
func (s *triageService) rerankQueued(ctx context.Context, report *models.PatientReport, criticality models.CriticalityLevel) (*models.PatientReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "triage",
		"method":      "rerankQueued",
		"report_id":   report.ID,
		"hospital_id": *report.HospitalID,
	})

	entry, err := s.queues.Rerank(*report.HospitalID, report.ID, criticality)
	if err != nil {
		s.alertOnConsistency(ctx, *report.HospitalID, err)
		log.WithError(err).Error("Failed to rerank queue entry")
		return nil, fmt.Errorf("service: could not rerank queue entry: %w", err)
	}

	if err := s.persistQueue(ctx, *report.HospitalID, entry); err != nil {
		return nil, err
	}
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("service: could not update report: %w", err)
	}
	s.audit(ctx, "queue", report.ID.String(), models.EventQueueUpdate, entry)

	// Публикация строго после фиксации в хранилище
	s.bus.Publish(eventbus.PatientTopic(report.ID), models.EventQueueUpdate, entry)
	s.publishHospitalSnapshot(*report.HospitalID)

	log.WithField("position", entry.Position).Info("Queue entry reranked")
	return report, nil
}

// assignAndEnqueue подбирает больницу и ставит обращение в ее очередь.
// Оценки пути по всем больницам считаются параллельно.
func (s *triageService) assignAndEnqueue(ctx context.Context, report *models.PatientReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "triage",
		"method":    "assignAndEnqueue",
		"report_id": report.ID,
	})

	if !report.HasCoordinates() {
		log.Warn("Report has no coordinates, leaving as pending")
		return nil
	}

	revision := s.currentRevision(report.ID)

	hospitals, err := s.hospitalRepo.ListHospitals(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list hospitals")
		return fmt.Errorf("service: could not list hospitals: %w", err)
	}

	candidates := s.estimateAll(ctx, report, hospitals)

	record, err := s.selector.Select(report, candidates)
	if err != nil {
		if errors.Is(err, assignment.ErrNoEligibleHospital) {
			// Обращение принято и остается в ожидании до сигнала об
			// изменении вместимости
			log.Warn("No eligible hospital, report stays pending")
			s.audit(ctx, "report", report.ID.String(), models.EventSystemAlert, map[string]string{"reason": "no_eligible_hospital"})
			return nil
		}
		return fmt.Errorf("service: hospital selection failed: %w", err)
	}

	// Результат для устаревшей ревизии отбрасывается, а не применяется
	if s.currentRevision(report.ID) != revision {
		log.Info("Assignment result superseded by a later triage update, discarding")
		return nil
	}

	if err := s.reportRepo.CreateAssignment(ctx, record); err != nil {
		log.WithError(err).Error("Failed to persist assignment")
		return fmt.Errorf("service: could not persist assignment: %w", err)
	}

	entry, err := s.queues.Insert(record.HospitalID, report.ID, *report.Criticality, time.Now())
	if err != nil {
		s.alertOnConsistency(ctx, record.HospitalID, err)
		log.WithError(err).Error("Failed to insert report into hospital queue")
		return fmt.Errorf("service: could not enqueue report: %w", err)
	}

	if err := s.persistQueue(ctx, record.HospitalID, entry); err != nil {
		s.rollbackEnqueue(ctx, record.HospitalID, report.ID, false)
		return err
	}

	report.Status = models.StatusQueued
	report.HospitalID = &record.HospitalID
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		s.rollbackEnqueue(ctx, record.HospitalID, report.ID, true)
		report.Status = models.StatusTriaged
		report.HospitalID = nil
		return fmt.Errorf("service: could not update report after assignment: %w", err)
	}
	s.audit(ctx, "assignment", report.ID.String(), models.EventDoctorAssigned, record)
	s.audit(ctx, "queue", report.ID.String(), models.EventPatientNew, entry)

	// Мутация зафиксирована - публикуем события и шлем уведомления
	s.bus.Publish(eventbus.HospitalTopic(record.HospitalID), models.EventPatientNew, entry)
	s.bus.Publish(eventbus.PatientTopic(report.ID), models.EventStatusUpdate, report)
	s.bus.Publish(eventbus.PatientTopic(report.ID), models.EventQueueUpdate, entry)
	s.publishHospitalSnapshot(record.HospitalID)

	s.notifyContacts(ctx, report, record)

	log.WithFields(logrus.Fields{
		"hospital_id": record.HospitalID,
		"position":    entry.Position,
		"rationale":   record.Rationale,
	}).Info("Report assigned and queued")
	return nil
}

// estimateAll параллельно считает оценки пути до всех больниц и собирает
// кандидатов для подбора. Больницы с невалидными координатами пропускаются.
func (s *triageService) estimateAll(ctx context.Context, report *models.PatientReport, hospitals []*models.Hospital) []assignment.Candidate {
	type result struct {
		hospital *models.Hospital
		estimate *models.TravelEstimate
		err      error
	}

	ch := make(chan result, len(hospitals))
	for _, h := range hospitals {
		go func(h *models.Hospital) {
			est, err := s.estimator.Estimate(*report.Latitude, *report.Longitude, h)
			ch <- result{hospital: h, estimate: est, err: err}
		}(h)
	}

	candidates := make([]assignment.Candidate, 0, len(hospitals))
	for range hospitals {
		res := <-ch
		if res.err != nil {
			s.logger.WithError(res.err).WithField("hospital_id", res.hospital.ID).Warn("Skipping hospital with invalid estimate")
			continue
		}
		res.estimate.ReportID = report.ID
		if err := s.reportRepo.SaveTravelEstimate(ctx, res.estimate); err != nil {
			s.logger.WithError(err).Warn("Failed to persist travel estimate")
		}
		candidates = append(candidates, assignment.Candidate{
			Hospital:    res.hospital,
			Estimate:    res.estimate,
			CurrentLoad: s.queues.WaitingCount(res.hospital.ID),
		})
	}
	return candidates
}

// StartTreatment забирает обращение из ожидающей последовательности на лечение
// и уплотняет позиции записей позади него
func (s *triageService) StartTreatment(ctx context.Context, reportID uuid.UUID) (*models.PatientReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "triage",
		"method":    "StartTreatment",
		"report_id": reportID,
	})
	log.Info("Starting treatment")

	report, err := s.reportRepo.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if report.HospitalID == nil || !report.Status.CanTransition(models.StatusInTreatment) {
		return nil, fmt.Errorf("service: report %s in status %s: %w", reportID, report.Status, ErrInvalidTransition)
	}
	hospitalID := *report.HospitalID

	entry, err := s.queues.Dequeue(hospitalID, reportID, models.QueueStatusInTreatment)
	if err != nil {
		s.alertOnConsistency(ctx, hospitalID, err)
		log.WithError(err).Error("Failed to dequeue report for treatment")
		return nil, fmt.Errorf("service: could not dequeue report: %w", err)
	}

	if err := s.persistQueue(ctx, hospitalID, entry); err != nil {
		return nil, err
	}

	report.Status = models.StatusInTreatment
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("service: could not update report: %w", err)
	}
	s.audit(ctx, "queue", reportID.String(), models.EventStatusUpdate, entry)

	s.bus.Publish(eventbus.PatientTopic(reportID), models.EventDoctorAssigned, report)
	s.bus.Publish(eventbus.PatientTopic(reportID), models.EventStatusUpdate, report)
	s.publishHospitalSnapshot(hospitalID)

	// Новая голова очереди узнает, что ее прием приблизился
	if snap := s.queues.Snapshot(hospitalID); len(snap.Entries) > 0 {
		head := snap.Entries[0]
		s.bus.Publish(eventbus.PatientTopic(head.ReportID), models.EventTreatmentReady, head)
	}

	log.Info("Treatment started")
	return report, nil
}

// CompleteReport завершает обращение: выписка либо снятие. Запись, еще
// ожидавшая в очереди, убирается с уплотнением позиций.
func (s *triageService) CompleteReport(ctx context.Context, reportID uuid.UUID, outcome models.ReportStatus) (*models.PatientReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "triage",
		"method":    "CompleteReport",
		"report_id": reportID,
		"outcome":   outcome,
	})
	log.Info("Completing report")

	if outcome != models.StatusDischarged && outcome != models.StatusRemoved {
		return nil, fmt.Errorf("service: outcome %s is not terminal: %w", outcome, ErrInvalidTransition)
	}

	report, err := s.reportRepo.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if !report.Status.CanTransition(outcome) {
		return nil, fmt.Errorf("service: report %s in status %s: %w", reportID, report.Status, ErrInvalidTransition)
	}

	if report.Status == models.StatusQueued && report.HospitalID != nil {
		entry, err := s.queues.Dequeue(*report.HospitalID, reportID, models.QueueStatusRemoved)
		if err != nil && !errors.Is(err, queue.ErrEntryNotFound) {
			s.alertOnConsistency(ctx, *report.HospitalID, err)
			return nil, fmt.Errorf("service: could not remove queue entry: %w", err)
		}
		if entry != nil {
			if err := s.persistQueue(ctx, *report.HospitalID, entry); err != nil {
				return nil, err
			}
			s.publishHospitalSnapshot(*report.HospitalID)
		}
	}

	report.Status = outcome
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("service: could not update report: %w", err)
	}
	s.audit(ctx, "report", reportID.String(), models.EventStatusUpdate, report)
	s.bus.Publish(eventbus.PatientTopic(reportID), models.EventStatusUpdate, report)

	log.Info("Report completed")
	return report, nil
}

// ReassignReport повторно подбирает больницу и атомарно переносит запись
// между очередями. Проигранная гонка с параллельным удалением восстанавливается
// повторным чтением состояния и одной повторной попыткой.
func (s *triageService) ReassignReport(ctx context.Context, reportID uuid.UUID) (*models.PatientReport, error) {
	report, err := s.reassignOnce(ctx, reportID)
	if err != nil && errors.Is(err, queue.ErrEntryNotFound) {
		s.logger.WithField("report_id", reportID).Warn("Reassignment lost a race, re-reading state and retrying once")
		report, err = s.reassignOnce(ctx, reportID)
		if err != nil && errors.Is(err, queue.ErrEntryNotFound) {
			return nil, fmt.Errorf("service: reassignment of report %s: %w", reportID, ErrStaleAssignment)
		}
	}
	return report, err
}

func (s *triageService) reassignOnce(ctx context.Context, reportID uuid.UUID) (*models.PatientReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "triage",
		"method":    "ReassignReport",
		"report_id": reportID,
	})

	report, err := s.reportRepo.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if report.Status != models.StatusQueued || report.HospitalID == nil || report.Criticality == nil {
		return nil, fmt.Errorf("service: report %s in status %s: %w", reportID, report.Status, ErrInvalidTransition)
	}
	if !report.HasCoordinates() {
		return nil, fmt.Errorf("service: report %s has no coordinates: %w", reportID, geo.ErrInvalidCoordinates)
	}
	fromHospital := *report.HospitalID

	hospitals, err := s.hospitalRepo.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list hospitals: %w", err)
	}
	candidates := s.estimateAll(ctx, report, hospitals)

	record, err := s.selector.Select(report, candidates)
	if err != nil {
		return nil, fmt.Errorf("service: hospital selection failed: %w", err)
	}
	if record.HospitalID == fromHospital {
		log.Info("Reassignment kept the current hospital")
		return report, nil
	}

	entry, err := s.queues.Move(fromHospital, record.HospitalID, reportID, *report.Criticality, time.Now())
	if err != nil {
		if !errors.Is(err, queue.ErrEntryNotFound) {
			s.alertOnConsistency(ctx, fromHospital, err)
			s.alertOnConsistency(ctx, record.HospitalID, err)
		}
		return nil, fmt.Errorf("service: could not move queue entry: %w", err)
	}

	if err := s.reportRepo.CreateAssignment(ctx, record); err != nil {
		s.rollbackMove(ctx, record.HospitalID, fromHospital, reportID, *report.Criticality, entry.EnteredAt)
		return nil, fmt.Errorf("service: could not persist assignment: %w", err)
	}
	if err := s.persistQueue(ctx, fromHospital, nil); err != nil {
		s.rollbackMove(ctx, record.HospitalID, fromHospital, reportID, *report.Criticality, entry.EnteredAt)
		return nil, err
	}
	if err := s.persistQueue(ctx, record.HospitalID, entry); err != nil {
		s.rollbackMove(ctx, record.HospitalID, fromHospital, reportID, *report.Criticality, entry.EnteredAt)
		return nil, err
	}

	report.HospitalID = &record.HospitalID
	if err := s.reportRepo.UpdateReport(ctx, report); err != nil {
		s.rollbackMove(ctx, record.HospitalID, fromHospital, reportID, *report.Criticality, entry.EnteredAt)
		report.HospitalID = &fromHospital
		return nil, fmt.Errorf("service: could not update report: %w", err)
	}
	s.audit(ctx, "assignment", reportID.String(), models.EventDoctorAssigned, record)

	s.bus.Publish(eventbus.PatientTopic(reportID), models.EventStatusUpdate, report)
	s.bus.Publish(eventbus.HospitalTopic(record.HospitalID), models.EventPatientNew, entry)
	s.publishHospitalSnapshot(fromHospital)
	s.publishHospitalSnapshot(record.HospitalID)

	log.WithFields(logrus.Fields{
		"from_hospital": fromHospital,
		"to_hospital":   record.HospitalID,
	}).Info("Report reassigned")
	return report, nil
}

// RetryPending повторяет подбор больницы для ожидающих обращений.
// Вызывается по сигналу об изменении вместимости.
func (s *triageService) RetryPending(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "triage",
		"method":  "RetryPending",
	})

	pending, err := s.reportRepo.ListPendingReports(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list pending reports")
		return 0, fmt.Errorf("service: could not list pending reports: %w", err)
	}

	assigned := 0
	for _, report := range pending {
		if err := s.assignAndEnqueue(ctx, report); err != nil {
			log.WithError(err).WithField("report_id", report.ID).Warn("Retry of pending report failed")
			continue
		}
		if report.Status == models.StatusQueued {
			assigned++
		}
	}

	log.WithFields(logrus.Fields{"pending": len(pending), "assigned": assigned}).Info("Pending reports retried")
	return assigned, nil
}

// GetHospitalQueue возвращает согласованный срез очереди больницы
// с ожидаемым временем ожидания каждой записи
func (s *triageService) GetHospitalQueue(ctx context.Context, hospitalID uuid.UUID) (*QueueView, error) {
	if _, err := s.hospitalRepo.GetHospital(ctx, hospitalID); err != nil {
		return nil, fmt.Errorf("service: could not get hospital: %w", err)
	}

	snapshot := s.queues.Snapshot(hospitalID)
	waits := make(map[uuid.UUID]time.Duration, len(snapshot.Entries))
	for _, e := range snapshot.Entries {
		wait, err := s.queues.EstimatedWait(hospitalID, e.ReportID)
		if err != nil {
			continue
		}
		waits[e.ReportID] = wait
	}
	return &QueueView{Snapshot: snapshot, Waits: waits}, nil
}

// ListHospitals возвращает справочник больниц
func (s *triageService) ListHospitals(ctx context.Context) ([]*models.Hospital, error) {
	hospitals, err := s.hospitalRepo.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list hospitals: %w", err)
	}
	return hospitals, nil
}

// GetStats возвращает число обращений за настроенное окно
func (s *triageService) GetStats(ctx context.Context) (int, error) {
	count, err := s.reportRepo.GetReportStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}

// RestoreQueues восстанавливает очереди из хранилища при старте сервиса
func (s *triageService) RestoreQueues(ctx context.Context) error {
	queues, err := s.reportRepo.LoadWaitingQueues(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load waiting queues: %w", err)
	}
	for hospitalID, entries := range queues {
		if err := s.queues.Restore(hospitalID, entries); err != nil {
			return fmt.Errorf("service: could not restore hospital queue: %w", err)
		}
	}
	s.logger.WithField("hospitals", len(queues)).Info("Hospital queues restored")
	return nil
}

// persistQueue фиксирует срез очереди больницы в хранилище.
// Событие публикуется только после успешной фиксации.
func (s *triageService) persistQueue(ctx context.Context, hospitalID uuid.UUID, affected *models.QueueEntry) error {
	snapshot := s.queues.Snapshot(hospitalID)
	if err := s.reportRepo.ReplaceHospitalQueue(ctx, hospitalID, snapshot.Entries, affected); err != nil {
		s.logger.WithError(err).WithField("hospital_id", hospitalID).Error("Failed to persist hospital queue")
		return fmt.Errorf("service: could not persist hospital queue: %w", err)
	}
	return nil
}

// rollbackEnqueue убирает запись из очереди в памяти после сбоя записи в
// хранилище: обращение без зафиксированного назначения не должно занимать
// слот, иначе повторный подбор упрется в дубликат. resync пересохраняет
// уплотненную очередь, когда предыдущий срез уже был зафиксирован.
func (s *triageService) rollbackEnqueue(ctx context.Context, hospitalID, reportID uuid.UUID, resync bool) {
	if _, err := s.queues.Dequeue(hospitalID, reportID, models.QueueStatusRemoved); err != nil {
		s.alertOnConsistency(ctx, hospitalID, err)
		s.logger.WithError(err).WithFields(logrus.Fields{
			"hospital_id": hospitalID,
			"report_id":   reportID,
		}).Error("Failed to roll back queue insert")
		return
	}
	if resync {
		if err := s.persistQueue(ctx, hospitalID, nil); err != nil {
			s.logger.WithError(err).WithField("hospital_id", hospitalID).Warn("Failed to persist queue after rollback")
		}
	}
}

// rollbackMove возвращает перенесенную запись в исходную очередь после сбоя
// записи в хранилище и пересохраняет обе очереди, чтобы память и хранилище
// не разошлись
func (s *triageService) rollbackMove(ctx context.Context, fromHospital, toHospital, reportID uuid.UUID, criticality models.CriticalityLevel, enteredAt time.Time) {
	entry, err := s.queues.Move(fromHospital, toHospital, reportID, criticality, enteredAt)
	if err != nil {
		s.alertOnConsistency(ctx, fromHospital, err)
		s.alertOnConsistency(ctx, toHospital, err)
		s.logger.WithError(err).WithFields(logrus.Fields{
			"from_hospital": fromHospital,
			"to_hospital":   toHospital,
			"report_id":     reportID,
		}).Error("Failed to roll back queue move")
		return
	}
	if err := s.persistQueue(ctx, fromHospital, nil); err != nil {
		s.logger.WithError(err).WithField("hospital_id", fromHospital).Warn("Failed to persist queue after rollback")
	}
	if err := s.persistQueue(ctx, toHospital, entry); err != nil {
		s.logger.WithError(err).WithField("hospital_id", toHospital).Warn("Failed to persist queue after rollback")
	}
}

// publishHospitalSnapshot публикует полный упорядоченный срез очереди больницы
func (s *triageService) publishHospitalSnapshot(hospitalID uuid.UUID) {
	snapshot := s.queues.Snapshot(hospitalID)
	s.bus.Publish(eventbus.HospitalTopic(hospitalID), models.EventHospitalQueueUpdate, snapshot)
}

// alertOnConsistency поднимает тревогу при нарушении инварианта очереди.
// Состояние не чинится молча: очередь больницы остановлена менеджером.
func (s *triageService) alertOnConsistency(ctx context.Context, hospitalID uuid.UUID, err error) {
	if !errors.Is(err, queue.ErrQueueConsistency) {
		return
	}
	s.logger.WithError(err).WithField("hospital_id", hospitalID).Error("Hospital queue halted on consistency violation")
	payload := map[string]string{
		"hospital_id": hospitalID.String(),
		"reason":      err.Error(),
	}
	s.audit(ctx, "hospital", hospitalID.String(), models.EventSystemAlert, payload)
	s.bus.Publish(eventbus.HospitalTopic(hospitalID), models.EventSystemAlert, payload)
}

// notifyContacts передает уведомление о назначении во внешний шлюз.
// Отправка асинхронная, ее сбой никогда не откатывает мутацию очереди.
func (s *triageService) notifyContacts(ctx context.Context, report *models.PatientReport, record *models.AssignmentRecord) {
	for _, target := range []struct {
		channel   string
		recipient string
	}{
		{channel: notify.ChannelSMS, recipient: report.PatientContact},
		{channel: notify.ChannelEmail, recipient: report.SubmitterContact},
	} {
		if target.recipient == "" {
			continue
		}
		notification := notify.Notification{
			Channel:   target.channel,
			Recipient: target.recipient,
			ReportID:  report.ID.String(),
			EventType: models.EventDoctorAssigned,
			Payload:   map[string]string{"hospital_id": record.HospitalID.String()},
			Timestamp: time.Now(),
		}
		if err := s.notifier.Publish(ctx, notification); err != nil {
			s.logger.WithError(err).Warn("Failed to enqueue notification")
		}
	}
}

// audit дописывает переход состояния в журнал событий
func (s *triageService) audit(ctx context.Context, entityType, entityID, eventType string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal audit payload")
		raw = nil
	}
	entry := &models.EventLogEntry{
		EntityType: entityType,
		EntityID:   entityID,
		EventType:  eventType,
		Payload:    raw,
	}
	if err := s.reportRepo.AppendEventLog(ctx, entry); err != nil {
		s.logger.WithError(err).Warn("Failed to append event log entry")
	}
}

func (s *triageService) bumpRevision(reportID uuid.UUID) {
	s.revMu.Lock()
	s.revisions[reportID]++
	s.revMu.Unlock()
}

func (s *triageService) currentRevision(reportID uuid.UUID) uint64 {
	s.revMu.Lock()
	defer s.revMu.Unlock()
	return s.revisions[reportID]
}
