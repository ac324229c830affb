package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dekritpn/kawio/internal/service"
)

type contextKey string

const playerIDKey contextKey = "playerID"

// withAuth resolves the bearer token to a player name and stores it in the
// request context.
func (that *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(that.logger, w, fmt.Errorf("%w: missing bearer token", service.ErrInvalidToken))
			return
		}

		playerID, err := that.auth.ValidateToken(token)
		if err != nil {
			respondError(that.logger, w, fmt.Errorf("%w: %s", service.ErrInvalidToken, err))
			return
		}

		ctx := context.WithValue(r.Context(), playerIDKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFromContext(ctx context.Context) string {
	playerID, _ := ctx.Value(playerIDKey).(string)

	return playerID
}
