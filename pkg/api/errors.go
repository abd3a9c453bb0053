package api

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Details string `json:"details,omitempty"` // подробности для диагностики
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status     string `json:"status"`      // ok
	ServerTime int64  `json:"server_time"` // время сервера в миллисекундах Unix
}
