package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_triage_system/internal/models"
	"github.com/shenikar/emergency_triage_system/internal/service"
)

const (
	hospitalListCacheKey = "hospitals:all"
	hospitalCacheTTL     = 5 * time.Minute
)

// HospitalRepository - справочник больниц, для ядра только на чтение
type HospitalRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewHospitalRepository(db *pgxpool.Pool, redisClient *redis.Client) service.HospitalRepository {
	return &HospitalRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// ListHospitals возвращает все больницы справочника, сперва пробуя кэш
func (r *HospitalRepository) ListHospitals(ctx context.Context) ([]*models.Hospital, error) {
	if cached, err := r.getListFromCache(ctx); err == nil && cached != nil {
		return cached, nil
	}

	query := `
		SELECT id, name, region, latitude, longitude, max_patients, specialty_tags
		FROM hospitals
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := make([]*models.Hospital, 0)
	for rows.Next() {
		h := &models.Hospital{}
		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Region,
			&h.Latitude,
			&h.Longitude,
			&h.MaxPatients,
			&h.SpecialtyTags,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital row: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error hospitals iteration: %w", err)
	}

	// Промах кэша не должен ломать чтение справочника
	_ = r.setListCache(ctx, hospitals)

	return hospitals, nil
}

// GetHospital возвращает больницу по ее UUID
func (r *HospitalRepository) GetHospital(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	h := &models.Hospital{}
	query := `
		SELECT id, name, region, latitude, longitude, max_patients, specialty_tags
		FROM hospitals
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.Name,
		&h.Region,
		&h.Latitude,
		&h.Longitude,
		&h.MaxPatients,
		&h.SpecialtyTags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hospital with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get hospital by id: %w", err)
	}
	return h, nil
}

// getListFromCache пытается получить список больниц из Redis
func (r *HospitalRepository) getListFromCache(ctx context.Context) ([]*models.Hospital, error) {
	val, err := r.redisClient.Get(ctx, hospitalListCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospitals from cache: %w", err)
	}

	hospitals := make([]*models.Hospital, 0)
	if err := json.Unmarshal(val, &hospitals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hospitals from cache: %w", err)
	}
	return hospitals, nil
}

// setListCache сохраняет список больниц в Redis
func (r *HospitalRepository) setListCache(ctx context.Context, hospitals []*models.Hospital) error {
	val, err := json.Marshal(hospitals)
	if err != nil {
		return fmt.Errorf("failed to marshal hospitals for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, hospitalListCacheKey, val, hospitalCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set hospitals in cache: %w", err)
	}
	return nil
}
