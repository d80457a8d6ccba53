package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/config"
	"github.com/thereayou/socialnet/internal/database"
	"github.com/thereayou/socialnet/internal/handlers"
	"github.com/thereayou/socialnet/internal/middleware"
	"github.com/thereayou/socialnet/internal/policy"
	"github.com/thereayou/socialnet/internal/services"
	"github.com/thereayou/socialnet/internal/session"
	"github.com/thereayou/socialnet/internal/storage"
	"github.com/thereayou/socialnet/internal/websocket"
	"github.com/thereayou/socialnet/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
	Gate       *middleware.Gate

	AuthH     *handlers.AuthHandler
	StreamH   *handlers.StreamHandler
	CommentsH *handlers.CommentsHandler
	FriendsH  *handlers.FriendsHandler
	ProfileH  *handlers.ProfileHandler
	UploadsH  *handlers.UploadsHandler
	WSH       *handlers.WebSocketHandler

	port string
}

// NewServer connects to the database and redis described by cfg and wires
// every handler.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	dbConn := &database.Database{}
	if err := dbConn.Connect(database.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.URL}); err != nil {
		return nil, fmt.Errorf("database connect failed: %w", err)
	}
	if err := dbConn.Migrate(); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		dbConn.Close()
		rdb.Close()
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}

	s, err := New(ctx, cfg, dbConn, rdb)
	if err != nil {
		dbConn.Close()
		rdb.Close()
		return nil, err
	}
	return s, nil
}

// New wires a server around already opened connections.
func New(ctx context.Context, cfg *config.Config, dbConn *database.Database, rdb *redis.Client) (*Server, error) {
	uploads, err := storage.NewUploads(cfg.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}

	access, err := policy.NewAccess(ctx)
	if err != nil {
		return nil, fmt.Errorf("access policy: %w", err)
	}

	identity, err := services.NewIdentityStore(dbConn, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	graph := services.NewSocialGraph(dbConn)
	content := services.NewContentStore(dbConn, uploads)
	feed := services.NewFeedAssembler(dbConn)

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	gate := middleware.NewGate(jwtMgr, session.NewBlacklist(rdb), identity, access)
	hub := websocket.NewHub()

	s := &Server{
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Gate:       gate,

		AuthH:     handlers.NewAuthHandler(identity, gate),
		StreamH:   handlers.NewStreamHandler(feed, content, graph, hub),
		CommentsH: handlers.NewCommentsHandler(content, graph, hub),
		FriendsH:  handlers.NewFriendsHandler(graph, identity, hub),
		ProfileH:  handlers.NewProfileHandler(identity),
		UploadsH:  handlers.NewUploadsHandler(content),
		WSH:       handlers.NewWebSocketHandler(hub),

		port: cfg.Port,
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	APIEndpoints(router, s)
	s.Router = router

	return s, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go s.Hub.Run()
	defer s.Hub.Stop()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", s.port).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server run error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) Close() error {
	return errors.Join(s.DB.Close(), s.Redis.Close())
}
