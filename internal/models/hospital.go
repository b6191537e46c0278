package models

import (
	"github.com/google/uuid"
)

// Hospital представляет больницу из внешнего справочника.
// Для ядра данные доступны только на чтение.
type Hospital struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Region        string    `json:"region,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	MaxPatients   int       `json:"max_patients"`
	SpecialtyTags []string  `json:"specialty_tags,omitempty"`
}

// Headroom возвращает запас вместимости при текущей загрузке
func (h *Hospital) Headroom(currentLoad int) int {
	return h.MaxPatients - currentLoad
}

// AtCapacity сообщает, достигнута ли заявленная вместимость
func (h *Hospital) AtCapacity(currentLoad int) bool {
	return h.MaxPatients > 0 && currentLoad >= h.MaxPatients
}
