package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/velara/FMC-SchedulingService/internal/api/handlers"
)

// userIDHeader заголовок, через который шлюз передает ID пользователя
const userIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type ctxKey int

const userIDKey ctxKey = iota

// Auth извлекает X-User-ID из заголовка и кладет его в контекст запроса
// Аутентификацию выполняет внешний шлюз; здесь только пропускаем его ID дальше
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
