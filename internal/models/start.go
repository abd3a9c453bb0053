package models

import (
	"slices"
	"time"
)

// StartStatus состояние записи в outbox
type StartStatus string

// Состояния жизненного цикла PendingStartEvent:
// pending -> syncing -> {synced | error}, error -> syncing (retry)
const (
	StatusPending StartStatus = "pending"
	StatusSyncing StartStatus = "syncing"
	StatusSynced  StartStatus = "synced"
	StatusError   StartStatus = "error"
)

// PendingStartEvent представляет зафиксированный старт, ожидающий
// подтверждения сервером. Хранится в локальном outbox и переживает
// перезапуск клиента и потерю сети.
type PendingStartEvent struct {
	CapturedTimestamp time.Time         `json:"captured_timestamp"`           // скорректированное время старта
	CreatedAt         time.Time         `json:"created_at"`                   // время создания записи
	TargetNames       map[string]string `json:"target_names,omitempty"`       // отображаемые имена дистанций (target_id -> name)
	ID                string            `json:"id"`                           // UUID, стабилен между попытками
	EventGroupID      string            `json:"event_group_id"`               // идентификатор забега
	Status            StartStatus       `json:"status"`                       // pending/syncing/synced/error
	LastError         string            `json:"last_error,omitempty"`         // текст последней ошибки синхронизации
	TargetIDs         []string          `json:"target_ids"`                   // дистанции с общим стартом, не пустой
	CorrectionTargets []string          `json:"correction_targets,omitempty"` // id удаленных записей, парные TargetIDs
	RetryCount        int               `json:"retry_count"`                  // количество неудачных попыток
	IsCorrection      bool              `json:"is_correction"`                // правка уже существующего старта
}

// IsTerminal reports whether the entry reached the synced state.
// Only synced entries are terminal; error entries stay visible until
// resolved or replaced.
func (e *PendingStartEvent) IsTerminal() bool {
	return e.Status == StatusSynced
}

// Retryable reports whether the batch driver may pick the entry up.
func (e *PendingStartEvent) Retryable(maxRetries int) bool {
	switch e.Status {
	case StatusPending:
		return true
	case StatusError:
		return e.RetryCount < maxRetries
	default:
		return false
	}
}

// Exhausted reports whether the entry failed too many times and needs
// a manual resync or a new capture.
func (e *PendingStartEvent) Exhausted(maxRetries int) bool {
	return e.Status == StatusError && e.RetryCount >= maxRetries
}

// ContainsTarget reports whether targetID is one of the entry's targets.
func (e *PendingStartEvent) ContainsTarget(targetID string) bool {
	return slices.Contains(e.TargetIDs, targetID)
}

// MatchesTargets сравнивает группу и набор дистанций.
// Сравнение множеств: порядок не важен, дубликаты игнорируются.
func (e *PendingStartEvent) MatchesTargets(eventGroupID string, targetIDs []string) bool {
	if e.EventGroupID != eventGroupID {
		return false
	}
	return sameSet(e.TargetIDs, targetIDs)
}

// DisplayName returns the name used to seed a new remote start record.
func (e *PendingStartEvent) DisplayName(targetID string) string {
	if name, ok := e.TargetNames[targetID]; ok && name != "" {
		return name
	}
	return "Start " + targetID
}

// CorrectionTargetFor returns the remote record id paired with targetID.
func (e *PendingStartEvent) CorrectionTargetFor(targetID string) (string, bool) {
	idx := slices.Index(e.TargetIDs, targetID)
	if idx < 0 || idx >= len(e.CorrectionTargets) {
		return "", false
	}
	return e.CorrectionTargets[idx], true
}

// Clone создает глубокую копию записи
func (e *PendingStartEvent) Clone() *PendingStartEvent {
	c := *e
	c.TargetIDs = slices.Clone(e.TargetIDs)
	c.CorrectionTargets = slices.Clone(e.CorrectionTargets)
	if e.TargetNames != nil {
		c.TargetNames = make(map[string]string, len(e.TargetNames))
		for k, v := range e.TargetNames {
			c.TargetNames[k] = v
		}
	}
	return &c
}

func sameSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, v := range a {
		left[v] = struct{}{}
	}
	right := make(map[string]struct{}, len(b))
	for _, v := range b {
		right[v] = struct{}{}
	}
	if len(left) != len(right) {
		return false
	}
	for v := range left {
		if _, ok := right[v]; !ok {
			return false
		}
	}
	return true
}

// StartRecord представляет официальное время старта одной дистанции
// (wave) на сервере.
type StartRecord struct {
	StartTime    time.Time `json:"start_time"`     // время старта
	CreatedAt    time.Time `json:"created_at"`     // время создания
	UpdatedAt    time.Time `json:"updated_at"`     // время последнего обновления
	ID           string    `json:"id"`             // UUID записи
	TargetID     string    `json:"target_id"`      // внешний ключ дистанции
	EventGroupID string    `json:"event_group_id"` // идентификатор забега
	Name         string    `json:"name"`           // отображаемое имя
}
