// Package web assembles the booking HTTP API: routing, middleware, the HTTP
// server and its scheduled jobs.
package web

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/util/common"
	"github.com/ReshmithaBathala/bookingbackend/web/cache"
	"github.com/ReshmithaBathala/bookingbackend/web/controller"
	"github.com/ReshmithaBathala/bookingbackend/web/entity"
	"github.com/ReshmithaBathala/bookingbackend/web/job"
	"github.com/ReshmithaBathala/bookingbackend/web/middleware"
	"github.com/ReshmithaBathala/bookingbackend/web/network"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"
	"gorm.io/gorm"
)

const (
	healthTimeout   = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

type routerOptions struct {
	rateCounter middleware.WindowCounter
}

type RouterOption func(*routerOptions)

// WithRateCounter shares rate-limit counters between instances.
func WithRateCounter(counter middleware.WindowCounter) RouterOption {
	return func(o *routerOptions) { o.rateCounter = counter }
}

// NewRouter builds the gin engine with every route of the API registered.
func NewRouter(cfg *config.Config, db *gorm.DB, opts ...RouterOption) (*gin.Engine, error) {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := entity.RegisterValidators(); err != nil {
		return nil, err
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		return nil, err
	}
	users := service.NewUserService(db)
	trains := service.NewTrainService(db)
	bookings := service.NewBookingService(db)
	auth := service.NewAuthService(users, tokens)

	engine := gin.New()
	// X-Forwarded-For is honoured only from these peers
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	engine.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, entity.ErrorMsg{Error: "internal_error"})
	}))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.CORS(cfg.CORSOrigin))
	// PNG tickets are already compressed
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{`^/bookings/[^/]+/qrcode$`}),
	))

	limiter := middleware.DefaultRateLimitConfig()
	limiter.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
	limiter.BurstSize = cfg.RateLimit.Burst
	limiter.Counter = o.rateCounter

	adminKey := middleware.AdminKey(cfg.AdminAPIKey)
	session := middleware.SessionAuth(tokens)

	g := engine.Group("/")
	controller.NewAuthController(g, auth, middleware.RateLimitMiddleware(limiter))
	controller.NewTrainController(g, trains, adminKey, session)
	controller.NewBookingController(g, bookings, session)
	controller.NewAdminController(g, adminKey)

	engine.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			logger.Warning("health check failed:", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, entity.ErrorMsg{Error: "not_found"})
	})

	return engine, nil
}

// Server owns the HTTP listener and the cron scheduler of one run.
type Server struct {
	cfg *config.Config
	db  *gorm.DB

	httpServer *http.Server
	listener   net.Listener
	cron       *cron.Cron
	redis      *cache.Store

	running atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{cfg: cfg, db: db, ctx: ctx, cancel: cancel}
}

func (s *Server) startTask() error {
	if s.cfg.AuditCron == "" {
		logger.Info("seat audit disabled")
		return nil
	}
	auditJob := job.NewSeatAuditJob(service.NewTrainService(s.db))
	if _, err := s.cron.AddJob(s.cfg.AuditCron, auditJob); err != nil {
		return common.NewErrorf("schedule seat audit %q: %v", s.cfg.AuditCron, err)
	}
	logger.Infof("seat audit scheduled at %s", s.cfg.AuditCron)
	return nil
}

// Start binds the listener and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	if err = s.startTask(); err != nil {
		return err
	}
	s.cron.Start()

	var opts []RouterOption
	if s.cfg.Redis.Enabled() {
		if s.redis, err = cache.Connect(s.cfg.Redis); err != nil {
			return err
		}
		opts = append(opts, WithRateCounter(s.redis))
	}

	engine, err := NewRouter(s.cfg, s.db, opts...)
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(s.cfg.Listen, strconv.Itoa(s.cfg.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	if s.cfg.TLSEnabled() {
		cert, err := tls.LoadX509KeyPair(s.cfg.CertFile, s.cfg.KeyFile)
		if err != nil {
			_ = listener.Close()
			return fmt.Errorf("load certificate: %w", err)
		}
		listener = network.NewAutoHttpsListener(listener)
		listener = tls.NewListener(listener, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		logger.Info("Web server running HTTPS on", listener.Addr())
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.ctx },
	}
	s.running.Store(true)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()
	return nil
}

// Stop drains in-flight requests and stops the scheduler.
func (s *Server) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	var err1, err2, err3 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err2 = s.listener.Close()
	}
	if s.redis != nil {
		err3 = s.redis.Close()
		s.redis = nil
	}
	s.cancel()
	s.running.Store(false)
	return common.Combine(err1, err2, err3)
}

func (s *Server) IsRunning() bool { return s.running.Load() }

// Addr is the bound address, useful when Port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) GetCtx() context.Context { return s.ctx }
