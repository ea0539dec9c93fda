package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	auth "github.com/webbongda/matchday/pkg/auth"
	config "github.com/webbongda/matchday/pkg/config"
	logging "github.com/webbongda/matchday/pkg/logging"
	metrics "github.com/webbongda/matchday/pkg/metrics"
	ratelimit "github.com/webbongda/matchday/pkg/ratelimit"

	resend "github.com/webbongda/matchday/repos/resend"
	store "github.com/webbongda/matchday/repos/store"

	admin "github.com/webbongda/matchday/services/admin"
	authsvc "github.com/webbongda/matchday/services/auth"
	live "github.com/webbongda/matchday/services/live"
	matches "github.com/webbongda/matchday/services/matches"
	predictions "github.com/webbongda/matchday/services/predictions"
	votes "github.com/webbongda/matchday/services/votes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open store")
	}
	defer closeStore()

	loc, err := cfg.Match.Location()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid match timezone")
	}

	creds := auth.NewCredentials(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), cfg.Auth.BcryptCost)
	hub := live.NewHub()

	var notifier authsvc.Notifier
	if cfg.Resend.Key != "" && len(cfg.Resend.NotifyTo) > 0 {
		notifier = resend.NewService(cfg.Resend.Key, cfg.Resend.From, cfg.Resend.NotifyTo)
	}

	authService := authsvc.NewAuthService(db, creds, notifier)
	adminService := admin.NewAdminService(db)
	matchesService := matches.NewMatchesService(db, hub, loc)
	predictionsService := predictions.NewPredictionsService(db)
	votesService := votes.NewVotesService(db)

	if cfg.Admin.MSV != "" && cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Admin.MSV, cfg.Admin.Password, cfg.Admin.FullName, cfg.Admin.Phone); err != nil {
			logging.Fatal().Err(err).Msg("failed to create admin account")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(), cors.New(corsConfig(cfg.CORS.Hosts)))

	requireMember := auth.AuthMiddleware(creds, db)
	requireAdmin := auth.RequireRole(store.RoleAdmin)

	authRouter := router.Group("/auth")
	authMembers := router.Group("/auth", requireMember)
	authAdmins := router.Group("/auth", requireMember, requireAdmin)

	apiRouter := router.Group("/api")
	apiMembers := router.Group("/api", requireMember)
	apiAdmins := router.Group("/api", requireMember, requireAdmin)

	authsvc.NewHTTPHandler(authsvc.HTTPOptions{
		Service:       authService,
		Public:        authRouter,
		Members:       authMembers,
		RegisterLimit: ratelimit.New(cfg.RateLimit.RegisterPerHour, time.Hour).Middleware(),
		LoginLimit:    ratelimit.New(cfg.RateLimit.LoginPerMinute, time.Minute).Middleware(),
	})

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  authAdmins,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Public:  apiRouter,
		Admin:   apiAdmins,
	})

	predictions.NewHTTPHandler(predictions.HTTPOptions{
		Service: predictionsService,
		Public:  apiRouter,
		Members: apiMembers,
	})

	votes.NewHTTPHandler(votes.HTTPOptions{
		Service: votesService,
		Public:  apiRouter,
		Members: apiMembers,
	})

	live.NewHTTPHandler(live.HTTPOptions{
		Hub:            hub,
		Router:         router,
		AllowedOrigins: cfg.CORS.Hosts,
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Matchday API is running"})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Str("backend", cfg.Store.Backend).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	// Hijacked websocket connections are not tracked by Shutdown.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.Store.Backend == config.BackendMemory {
		logging.Warn().Msg("using the in-memory store, data is lost on restart")
		return store.NewMemory(), func() {}, nil
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Firebase.CredentialsJSON)))
	}

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, nil, err
	}
	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store.NewFirestore(firestoreClient), func() { _ = firestoreClient.Close() }, nil
}

func corsConfig(hosts []string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	if len(hosts) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	for _, h := range hosts {
		if h == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = hosts
	corsCfg.AllowCredentials = true
	return corsCfg
}
