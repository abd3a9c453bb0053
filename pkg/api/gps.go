package api

import "time"

// GPSResponse представляет ответ webhook на принятую точку
type GPSResponse struct {
	Timestamp time.Time `json:"timestamp"` // время фиксации координат
	IMEI      string    `json:"imei"`      // идентификатор трекера
	Success   bool      `json:"success"`
}

// DeviceRequest представляет запрос на регистрацию или изменение трекера
type DeviceRequest struct {
	Kind    string `json:"kind"`     // runner или moto
	BoundID string `json:"bound_id"` // id бегуна или мотоцикла
	Active  bool   `json:"active"`
}

// DeviceResponse представляет запись реестра трекеров
type DeviceResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IMEI      string    `json:"imei"`
	Kind      string    `json:"kind"`
	BoundID   string    `json:"bound_id"`
	Active    bool      `json:"active"`
}

// TrackingPoint представляет сохраненную точку трека
type TrackingPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Speed     *float64  `json:"speed,omitempty"`
	Heading   *float64  `json:"heading,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty"`
	Battery   *float64  `json:"battery,omitempty"`
	ID        string    `json:"id"`
	IMEI      string    `json:"imei"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// TrackResponse представляет трек бегуна или мотоцикла
type TrackResponse struct {
	Kind    string          `json:"kind"`
	BoundID string          `json:"bound_id"`
	Points  []TrackingPoint `json:"points"`
}
