package app

import (
	"net/http"
	"regportal/internal/app/deps"
	"regportal/internal/app/services"
	loginwithemail "regportal/internal/http/handlers/auth/log_in_with_email"
	resetpassword "regportal/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "regportal/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "regportal/internal/http/handlers/auth/sign_up_with_email"
	checkdatabase "regportal/internal/http/handlers/health/check_database"
	"regportal/internal/http/handlers/index"
	findbyregistrationnumber "regportal/internal/http/handlers/user/find_by_registration_number"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler:           NewRouter(deps.Config.AllowedOrigins, s),
		Addr:              deps.Config.Addr(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handle := func(path string, handler http.Handler) {
		router.Method(http.MethodGet, path, handler)
		router.Method(http.MethodPost, path, handler)
	}
	handle("/", index.New())
	handle("/login", loginwithemail.New(s.LogInWithEmail))
	handle("/register", signupwithemail.New(s.SignUpWithEmail))
	handle("/success", findbyregistrationnumber.New(s.FindByRegistrationNumber))
	handle("/forgot-password", sendpasswordresettoken.New(s.SendPasswordResetToken))
	handle("/reset-password/{token}", resetpassword.New(s.CheckPasswordResetToken, s.ResetPassword))

	healthHandler := checkdatabase.New(s.CheckDatabase)
	router.Method(http.MethodGet, "/mongodb", healthHandler)
	router.Method(http.MethodGet, "/health", healthHandler)

	return router
}
