// Package httpapi exposes the service over the REST surface consumed by
// clients: /login, /logout, /file and /list, with the session token in
// the auth-token header.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/DmitryKarasov/FileService/internal/logging"
	"github.com/DmitryKarasov/FileService/internal/server/auth"
	"github.com/DmitryKarasov/FileService/internal/server/models"
)

// AuthService is the authentication surface the handlers need.
type AuthService interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

// FileService is the file operations surface the handlers need.
type FileService interface {
	Upload(ctx context.Context, name string, content []byte, size int64) error
	Download(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	List(ctx context.Context, limit int) ([]models.FileInfo, error)
}

// Server serves the HTTP API.
type Server struct {
	address    string
	logger     logging.Logger
	auth       AuthService
	files      FileService
	gate       *auth.Gate
	corsOrigin string
}

func NewServer(address string, l logging.Logger, as AuthService, fs FileService, gate *auth.Gate, corsOrigin string) *Server {
	return &Server{
		address:    address,
		logger:     l.With("module", "http_server"),
		auth:       as,
		files:      fs,
		gate:       gate,
		corsOrigin: corsOrigin,
	}
}

// Handler builds the route table wrapped in the CORS and authentication
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", s.logout)
	mux.HandleFunc("GET /file", s.downloadFile)
	mux.HandleFunc("POST /file", s.uploadFile)
	mux.HandleFunc("PUT /file", s.editFileName)
	mux.HandleFunc("DELETE /file", s.deleteFile)
	mux.HandleFunc("GET /list", s.listFiles)

	return s.corsMiddleware(s.authMiddleware(mux))
}

// Run starts the HTTP server and blocks until it stops. Cancelling ctx
// shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
