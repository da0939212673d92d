// Package rest serves the account API over HTTP with a chi router.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/server/auth"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Accounts is the slice of the account service the handlers call.
type Accounts interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthResult, error)
	Signin(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, id string) (*models.PublicAccount, error)
	UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.PublicAccount, error)
	DeleteAccount(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id, current, next string) error
	GetNotificationSettings(ctx context.Context, id string) (models.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, id string, patch models.NotificationSettingsPatch) (models.NotificationSettings, error)
	GetPreferenceSettings(ctx context.Context, id string) (models.PreferenceSettings, error)
	UpdatePreferenceSettings(ctx context.Context, id string, patch models.PreferenceSettingsPatch) (models.PreferenceSettings, error)
	Ping(ctx context.Context) error
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Timeouts bound the HTTP server. Zero values leave net/http defaults.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

type Server struct {
	address  string
	accounts Accounts
	tokens   TokenVerifier
	logger   logging.Logger
	timeouts Timeouts
	router   chi.Router
}

func NewServer(address string, l logging.Logger, accounts Accounts, tokens TokenVerifier, timeouts Timeouts) *Server {
	s := &Server{
		address:  address,
		accounts: accounts,
		tokens:   tokens,
		logger:   l.With("module", "rest_server"),
		timeouts: timeouts,
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", s.signup)
		r.Post("/signin", s.signin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/change-password", s.changePassword)

			r.Group(func(r chi.Router) {
				r.Use(s.requireOwner)

				r.Get("/profile/{userId}", s.getProfile)
				r.Put("/update/{userId}", s.updateProfile)
				r.Delete("/delete/{userId}", s.deleteAccount)
				r.Get("/notification-settings/{userId}", s.getNotificationSettings)
				r.Put("/update-notification-settings/{userId}", s.updateNotificationSettings)
				r.Get("/preference-settings/{userId}", s.getPreferenceSettings)
				r.Put("/update-preference-settings/{userId}", s.updatePreferenceSettings)
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")

		shutdownCtx := context.Background()
		if s.timeouts.Shutdown > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.timeouts.Shutdown)
			defer cancel()
		}
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting REST server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
