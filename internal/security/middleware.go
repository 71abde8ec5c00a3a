package security

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type contextKey string

// UserContextKey — ключ, под которым claims пользователя лежат в контексте запроса.
const UserContextKey contextKey = "user"

// ClaimsFromContext достает claims, положенные middleware'ом.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	return claims, ok && claims != nil
}

// JWTMiddleware проверяет access токен из cookie accessToken или заголовка
// Authorization: Bearer и кладет claims в контекст запроса.
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, next))
	}
}

func handleAuthentication(jwtService *JWTService, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		jwtTokenStr := ""

		if cookie, err := request.Cookie("accessToken"); err == nil {
			jwtTokenStr = cookie.Value
		}
		if jwtTokenStr == "" {
			authorizationHeader := request.Header.Get("Authorization")
			if strings.HasPrefix(authorizationHeader, "Bearer ") == false {
				http.Error(writer, "не авторизован", http.StatusUnauthorized)
				return
			}
			jwtTokenStr = strings.TrimPrefix(authorizationHeader, "Bearer ")
		}

		claims, err := jwtService.Validate(jwtTokenStr, AccessToken)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "невалидный токен", http.StatusUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, request)
	}
}
