package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DmitryKarasov/FileService/internal/common"
	"github.com/DmitryKarasov/FileService/internal/server/auth"
)

// tokenHeader is the request header carrying the session token.
const tokenHeader = "auth-token"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message, ID: status})
}

// authMiddleware resolves the auth-token header to an identity through the
// gate. Public paths pass untouched; everything else either gets the
// identity attached to the request context or a 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.gate.Public(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := s.gate.Authorize(r.Context(), r.Header.Get(tokenHeader), r.URL.Path)
		if err != nil {
			if errors.Is(err, common.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "Unauthorized error")
				return
			}
			s.logger.Error(r.Context(), "authorization failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// corsMiddleware applies the single-origin CORS policy and short-circuits
// preflight requests.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
