package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// OrganizerIDKey ключ для хранения id организатора в контексте
	OrganizerIDKey contextKey = "organizer_id"
	// OrganizerNameKey ключ для хранения имени станции в контексте
	OrganizerNameKey contextKey = "organizer_name"
)

// GetOrganizerID извлекает id организатора из контекста запроса
func GetOrganizerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(OrganizerIDKey).(string)
	return id, ok
}

// GetOrganizerName извлекает имя станции из контекста запроса
func GetOrganizerName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(OrganizerNameKey).(string)
	return name, ok
}
