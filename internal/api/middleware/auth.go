// Package middleware HTTP-middleware: аутентификация оператора и метрики
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном оператора
const AdminTokenHeader = "X-Admin-Token"

const msgUnauthorized = "требуется токен оператора"

// Auth возвращает middleware, проверяющий токен оператора
// Токен сравнивается в константное время
func Auth(adminToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(adminToken)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
