package models

import "time"

// ClockOffsetSample один замер смещения часов.
// Не сохраняется, используется только для агрегации.
type ClockOffsetSample struct {
	LocalSendTime    time.Time // t0, локальное время перед отправкой
	LocalReceiveTime time.Time // t3, локальное время после получения ответа
	ServerTime       time.Time // время сервера из заголовка ответа
}

// Offset returns midpoint(t0, t3) - serverTime. Positive means the local
// clock is ahead of the server. Assumes symmetric network latency.
func (s ClockOffsetSample) Offset() time.Duration {
	rtt := s.LocalReceiveTime.Sub(s.LocalSendTime)
	midpoint := s.LocalSendTime.Add(rtt / 2)
	return midpoint.Sub(s.ServerTime)
}

// ClockOffsetState сохраненное состояние оценщика смещения.
type ClockOffsetState struct {
	LastSyncAt *time.Time    `json:"last_sync,omitempty"` // время последней успешной оценки
	Offset     time.Duration `json:"offset"`              // local - server
}
