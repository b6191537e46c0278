package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/service"
)

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) service.ReportRepository {
	return &ReportRepository{db: db}
}

// CreateReport создает новую запись об обращении в бд
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.PatientReport) error {
	query := `
		INSERT INTO patient_reports (id, classification, patient_status, latitude, longitude, patient_contact, submitter_contact, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.ID,
		report.Classification,
		report.PatientStatus,
		report.Latitude,
		report.Longitude,
		report.PatientContact,
		report.SubmitterContact,
		report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient report: %w", err)
	}
	return nil
}

// GetReport возвращает обращение по его UUID
func (r *ReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*models.PatientReport, error) {
	report := &models.PatientReport{}
	query := `
		SELECT id, classification, patient_status, latitude, longitude, patient_contact, submitter_contact, status, criticality, hospital_id, created_at, updated_at
		FROM patient_reports
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Classification,
		&report.PatientStatus,
		&report.Latitude,
		&report.Longitude,
		&report.PatientContact,
		&report.SubmitterContact,
		&report.Status,
		&report.Criticality,
		&report.HospitalID,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("patient report with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get patient report by id: %w", err)
	}
	return report, nil
}

// UpdateReport обновляет изменяемые поля обращения, updated_at растет монотонно
func (r *ReportRepository) UpdateReport(ctx context.Context, report *models.PatientReport) error {
	query := `
		UPDATE patient_reports SET
			status = $1,
			criticality = $2,
			hospital_id = $3,
			updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		report.Status,
		report.Criticality,
		report.HospitalID,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("patient report with id %s not found for update", report.ID)
	}
	return nil
}

// ListPendingReports возвращает триажированные обращения без назначенной больницы
func (r *ReportRepository) ListPendingReports(ctx context.Context) ([]*models.PatientReport, error) {
	query := `
		SELECT id, classification, patient_status, latitude, longitude, patient_contact, submitter_contact, status, criticality, hospital_id, created_at, updated_at
		FROM patient_reports
		WHERE status = $1 AND hospital_id IS NULL
		ORDER BY criticality ASC, created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, models.StatusTriaged)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.PatientReport, 0)
	for rows.Next() {
		report := &models.PatientReport{}
		err := rows.Scan(
			&report.ID,
			&report.Classification,
			&report.PatientStatus,
			&report.Latitude,
			&report.Longitude,
			&report.PatientContact,
			&report.SubmitterContact,
			&report.Status,
			&report.Criticality,
			&report.HospitalID,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error pending reports iteration: %w", err)
	}
	return reports, nil
}

// SaveTriageResult сохраняет результат триажа в журнал triage_results
func (r *ReportRepository) SaveTriageResult(ctx context.Context, reportID uuid.UUID, criticality models.CriticalityLevel) error {
	query := `
		INSERT INTO triage_results (report_id, criticality)
		VALUES ($1, $2);
	`
	if _, err := r.db.Exec(ctx, query, reportID, criticality); err != nil {
		return fmt.Errorf("failed to save triage result: %w", err)
	}
	return nil
}

// SaveTravelEstimate вставляет новую оценку пути.
// Записи не обновляются, актуальная определяется по estimated_at.
func (r *ReportRepository) SaveTravelEstimate(ctx context.Context, estimate *models.TravelEstimate) error {
	query := `
		INSERT INTO travel_estimates (report_id, hospital_id, distance_meters, travel_time_seconds, congestion_factor, method, estimated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		estimate.ReportID,
		estimate.HospitalID,
		estimate.DistanceMeters,
		estimate.TravelTimeSeconds,
		estimate.CongestionFactor,
		estimate.Method,
		estimate.EstimatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save travel estimate: %w", err)
	}
	return nil
}

// CreateAssignment создает новое назначение и помечает прежние как вытесненные.
// Прежние записи сохраняются для аудита.
func (r *ReportRepository) CreateAssignment(ctx context.Context, record *models.AssignmentRecord) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		supersede := `
			UPDATE hospital_assignments SET superseded = TRUE
			WHERE report_id = $1 AND NOT superseded;
		`
		if _, err := tx.Exec(ctx, supersede, record.ReportID); err != nil {
			return fmt.Errorf("failed to supersede prior assignments: %w", err)
		}

		insert := `
			INSERT INTO hospital_assignments (report_id, hospital_id, rationale, assigned_at)
			VALUES ($1, $2, $3, $4) RETURNING id;
		`
		if err := tx.QueryRow(ctx, insert,
			record.ReportID,
			record.HospitalID,
			record.Rationale,
			record.AssignedAt,
		).Scan(&record.ID); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// ReplaceHospitalQueue транзакционно замещает сохраненную очередь больницы
// ее актуальным срезом и фиксирует статус затронутой записи в queue_management
func (r *ReportRepository) ReplaceHospitalQueue(ctx context.Context, hospitalID uuid.UUID, entries []*models.QueueEntry, affected *models.QueueEntry) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM patient_queue WHERE hospital_id = $1;`, hospitalID); err != nil {
			return fmt.Errorf("failed to clear hospital queue: %w", err)
		}

		insert := `
			INSERT INTO patient_queue (hospital_id, report_id, position, criticality, entered_at)
			VALUES ($1, $2, $3, $4, $5);
		`
		for _, e := range entries {
			if _, err := tx.Exec(ctx, insert, e.HospitalID, e.ReportID, e.Position, e.Criticality, e.EnteredAt); err != nil {
				return fmt.Errorf("failed to insert queue entry for report %s: %w", e.ReportID, err)
			}
		}

		if affected != nil {
			upsert := `
				INSERT INTO queue_management (hospital_id, report_id, status, updated_at)
				VALUES ($1, $2, $3, NOW())
				ON CONFLICT (hospital_id, report_id)
				DO UPDATE SET status = EXCLUDED.status, updated_at = NOW();
			`
			if _, err := tx.Exec(ctx, upsert, affected.HospitalID, affected.ReportID, affected.Status); err != nil {
				return fmt.Errorf("failed to upsert queue management row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace hospital queue: %w", err)
	}
	return nil
}

// LoadWaitingQueues возвращает сохраненные ожидающие записи, сгруппированные
// по больницам, для восстановления очередей при старте
func (r *ReportRepository) LoadWaitingQueues(ctx context.Context) (map[uuid.UUID][]*models.QueueEntry, error) {
	query := `
		SELECT hospital_id, report_id, position, criticality, entered_at
		FROM patient_queue
		ORDER BY hospital_id, position;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load waiting queues: %w", err)
	}
	defer rows.Close()

	queues := make(map[uuid.UUID][]*models.QueueEntry)
	for rows.Next() {
		entry := &models.QueueEntry{Status: models.QueueStatusWaiting}
		err := rows.Scan(
			&entry.HospitalID,
			&entry.ReportID,
			&entry.Position,
			&entry.Criticality,
			&entry.EnteredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan queue entry row: %w", err)
		}
		queues[entry.HospitalID] = append(queues[entry.HospitalID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error waiting queues iteration: %w", err)
	}
	return queues, nil
}

// AppendEventLog дописывает запись в журнал событий
func (r *ReportRepository) AppendEventLog(ctx context.Context, entry *models.EventLogEntry) error {
	query := `
		INSERT INTO event_log (entity_type, entity_id, event_type, payload)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		entry.EntityType,
		entry.EntityID,
		entry.EventType,
		entry.Payload,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append event log entry: %w", err)
	}
	return nil
}

// GetReportStats возвращает число обращений, поступивших за окно в минутах
func (r *ReportRepository) GetReportStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM patient_reports
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get report stats: %w", err)
	}
	return count, nil
}
