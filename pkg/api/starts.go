package api

import "time"

// HeaderServerTime заголовок с временем сервера в миллисекундах Unix.
// Дополняет стандартный Date, у которого точность одна секунда.
const HeaderServerTime = "X-Server-Time-Ms"

// StartRecord представляет официальное время старта дистанции
type StartRecord struct {
	StartTime    time.Time `json:"start_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	TargetID     string    `json:"target_id"`
	EventGroupID string    `json:"event_group_id"`
	Name         string    `json:"name"`
}

// CreateStartRequest представляет запрос на создание записи старта
type CreateStartRequest struct {
	StartTime    time.Time `json:"start_time"`     // скорректированное время старта
	TargetID     string    `json:"target_id"`      // дистанция
	EventGroupID string    `json:"event_group_id"` // забег
	Name         string    `json:"name"`           // отображаемое имя
}

// UpdateStartRequest представляет запрос на изменение времени старта
type UpdateStartRequest struct {
	StartTime time.Time `json:"start_time"`
}
