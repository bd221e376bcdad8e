package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	headerAuthorization = "Authorization"
	headerUserID        = "X-User-ID"
	bearerPrefix        = "Bearer "

	msgMissingToken  = "отсутствует токен авторизации"
	msgMissingUserID = "отсутствует заголовок X-User-ID"
)

// Auth извлекает токен и ID пользователя из заголовков и кладет их в контекст.
// Токен передается в удаленный API как есть, проверку выполняет он.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(headerAuthorization)
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if !strings.HasPrefix(header, bearerPrefix) || token == "" {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := domain.WithActor(r.Context(), domain.Actor{ID: userID, Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, положенный в контекст middleware Auth
func GetUserID(ctx context.Context) (string, bool) {
	actor, err := domain.ActorFromContext(ctx)
	if err != nil {
		return "", false
	}
	return actor.ID, true
}
