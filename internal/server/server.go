package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/norbulab/sikkim-trails-services/api/internal/admin/application"
	"github.com/norbulab/sikkim-trails-services/api/internal/config"
	"github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/chatbackend"
	"github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/identity"
	mongodoc "github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/mongo"
	"github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/weather"
	adminhttp "github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/common"
	publichttp "github.com/norbulab/sikkim-trails-services/api/internal/interfaces/http/public"
	publicapp "github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

// Server manages the HTTP lifecycle and acts as the composition root:
// it assembles repositories, application services and handlers, and
// wires them onto the router.
type Server struct {
	logger   *log.Logger
	client   *mongo.Client
	database *mongo.Database

	guideMatches     publicapp.GuideMatchService
	signupService    publicapp.SignupService
	chatService      *publicapp.ChatService
	weatherClient    *weather.Client
	monasteryRepo    *mongodoc.MonasteryRepository
	liveMonasteries  *mongodoc.LiveCollection
	adminMonasteries adminapp.MonasteryService
	adminGuides      adminapp.GuideService

	jwtSecret          []byte
	jwtIssuer          string
	jwtAudience        string
	adminIssuer        string
	weatherDefaultCity string
	addr               string
	allowedOrigins     []string
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New assembles the application from Config and the Mongo client.
func New(cfg config.Config, client *mongo.Client) (*Server, error) {
	database := client.Database(cfg.MongoDatabase)

	identityProvider, err := identity.NewAnonymousProvider(identity.Config{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Secret:   cfg.JWTSecret,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}

	var backend publicapp.ChatBackend
	if cfg.ChatBackendURL != "" {
		// No client-level timeout; each relay is bounded per request.
		backend = chatbackend.NewClient(cfg.ChatBackendURL, &http.Client{})
	}

	srv := &Server{
		logger:             cfg.ServerLog,
		client:             client,
		database:           database,
		jwtSecret:          append([]byte(nil), cfg.JWTSecret...),
		jwtIssuer:          cfg.JWTIssuer,
		jwtAudience:        cfg.JWTAudience,
		adminIssuer:        cfg.AdminIssuer,
		weatherDefaultCity: cfg.WeatherDefaultCity,
		addr:               cfg.Addr,
		allowedOrigins:     append([]string(nil), cfg.AllowedOrigins...),
	}

	srv.monasteryRepo = mongodoc.NewMonasteryRepository(database, cfg.MonasteryCollection)
	srv.liveMonasteries = mongodoc.NewLiveCollection(database, cfg.MonasteryCollection, cfg.ServerLog)
	srv.guideMatches = publicapp.NewGuideMatchService(mongodoc.NewGuideRepository(database, cfg.GuideCollection))
	srv.signupService = publicapp.NewSignupService(identityProvider, mongodoc.NewProfileRepository(database, cfg.ProfileCollection))
	srv.chatService = publicapp.NewChatService(publicapp.ChatConfig{
		Backend:     backend,
		Timeout:     cfg.ChatTimeout,
		Welcome:     cfg.ChatWelcome,
		SessionTTL:  cfg.ChatSessionTTL,
		MaxSessions: cfg.ChatMaxSessions,
	})
	// The weather upstream call is deliberately unbounded.
	srv.weatherClient = weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, &http.Client{})

	srv.adminMonasteries = adminapp.NewMonasteryService(mongodoc.NewAdminMonasteryRepository(database, cfg.MonasteryCollection))
	srv.adminGuides = adminapp.NewGuideService(mongodoc.NewAdminGuideRepository(database, cfg.GuideCollection))

	return srv, nil
}

// Run starts the HTTP server, assembling routing and middleware. It
// blocks until the process receives a shutdown signal or the listener
// fails.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:             s.logger,
		Monasteries:        s.monasteryRepo,
		LiveMonasteries:    s.liveMonasteries,
		Guides:             s.guideMatches,
		Signup:             s.signupService,
		Chat:               s.chatService,
		Weather:            s.weatherClient,
		WeatherDefaultCity: s.weatherDefaultCity,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:           s.logger,
		MonasteryService: s.adminMonasteries,
		GuideService:     s.adminGuides,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.adminMiddleware)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS grants the configured origins access; "*" allows any origin.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports Mongo connectivity for monitoring probes.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware verifies the bearer JWT and stores the principal in the
// request context. Anonymous signup tokens and admin tokens both pass;
// routes that need more use adminMiddleware.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.userFromRequest(r)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(commonhttp.ContextWithUser(r.Context(), user)))
	})
}

// adminMiddleware additionally requires the admin issuer.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.userFromRequest(r)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}
		if !user.Admin {
			commonhttp.WriteError(s.logger, w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r.WithContext(commonhttp.ContextWithUser(r.Context(), user)))
	})
}

func (s *Server) userFromRequest(r *http.Request) (authenticatedUser, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return authenticatedUser{}, errors.New("missing Authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return authenticatedUser{}, errors.New("a Bearer token is required")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return authenticatedUser{}, errors.New("access token is empty")
	}

	return s.parseAuthToken(tokenString)
}

type authClaims struct {
	jwt.RegisteredClaims
	Anonymous bool `json:"anonymous,omitempty"`
}

// parseAuthToken verifies signature, issuer and audience. Both the
// anonymous and the admin issuer are accepted; which one signed the
// token decides the principal's privileges.
func (s *Server) parseAuthToken(tokenString string) (authenticatedUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return authenticatedUser{}, errors.New("access token is invalid")
	}

	if claims.Subject == "" {
		return authenticatedUser{}, errors.New("access token is invalid")
	}
	if claims.Issuer != s.jwtIssuer && claims.Issuer != s.adminIssuer {
		return authenticatedUser{}, errors.New("access token is invalid")
	}
	if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
		return authenticatedUser{}, errors.New("access token is invalid")
	}

	return authenticatedUser{
		ID:        claims.Subject,
		Anonymous: claims.Anonymous,
		Admin:     claims.Issuer == s.adminIssuer,
	}, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// shutdown disconnects the Mongo client with a timeout so process exit
// does not leak connections.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB disconnect error: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals to run a
// graceful shutdown.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server exited abnormally: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("server shutdown error: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
