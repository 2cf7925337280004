package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/nav"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type errorBody struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Recovery string `json:"recovery"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Success:  false,
		Error:    msg,
		Recovery: nav.RecoveryFor(r.URL.Path),
	})
}

// AuthMiddleware attaches the caller to the request context. Requests without
// a usable token pass through anonymously, and guarded routes answer 401 on
// their own. A stale cookie is cleared so the browser stops sending it.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil || claims.UserID == 0 {
			logger.FromCtx(r.Context()).Info("ignoring unusable access token", zap.Error(err))
			if c, cerr := r.Cookie(auth.AccessTokenCookie); cerr == nil && c.Value == tokenStr {
				auth.ClearAccessTokenCookie(w, isHTTPS(r))
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
