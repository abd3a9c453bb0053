package middleware

import (
	"net/http"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/iudanet/startline/pkg/api"
)

// ServerTimeMiddleware добавляет api.HeaderServerTime в каждый ответ.
// Время берется перед вызовом обработчика; клиенты оценивают по нему смещение часов.
func ServerTimeMiddleware(clock clockwork.Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(api.HeaderServerTime, strconv.FormatInt(clock.Now().UnixMilli(), 10))
			next.ServeHTTP(w, r)
		})
	}
}
