package models

import "time"

// DeviceKind тип сущности, к которой привязан GPS трекер
type DeviceKind string

// Трекер может быть привязан к бегуну или к мотоциклу сопровождения
const (
	DeviceKindRunner DeviceKind = "runner"
	DeviceKindMoto   DeviceKind = "moto"
)

// Valid reports whether k is a known device kind.
func (k DeviceKind) Valid() bool {
	return k == DeviceKindRunner || k == DeviceKindMoto
}

// Device представляет запись реестра GPS трекеров
type Device struct {
	CreatedAt time.Time  `json:"created_at"` // время регистрации
	UpdatedAt time.Time  `json:"updated_at"` // время последнего обновления
	IMEI      string     `json:"imei"`       // аппаратный идентификатор
	Kind      DeviceKind `json:"kind"`       // runner или moto
	BoundID   string     `json:"bound_id"`   // id бегуна или мотоцикла
	Active    bool       `json:"active"`     // неактивные трекеры отклоняются
}

// TrackingPoint нормализованная точка трека после разбора webhook
type TrackingPoint struct {
	Timestamp time.Time  `json:"timestamp"`          // время фиксации координат (UTC)
	Speed     *float64   `json:"speed,omitempty"`    // км/ч
	Heading   *float64   `json:"heading,omitempty"`  // градусы
	Altitude  *float64   `json:"altitude,omitempty"` // метры
	Battery   *float64   `json:"battery,omitempty"`  // проценты
	ID        string     `json:"id"`                 // UUID строки
	IMEI      string     `json:"imei"`               // идентификатор трекера
	Kind      DeviceKind `json:"kind"`               // куда была записана точка
	BoundID   string     `json:"bound_id"`           // бегун или мотоцикл
	Latitude  float64    `json:"latitude"`           // широта [-90, 90]
	Longitude float64    `json:"longitude"`          // долгота [-180, 180]
}
