package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/axolutions/linkbio-dashboard/modules/account"
	"github.com/axolutions/linkbio-dashboard/pkg/audit"
	"github.com/axolutions/linkbio-dashboard/pkg/clientip"
	"github.com/axolutions/linkbio-dashboard/pkg/cookie"
	"github.com/axolutions/linkbio-dashboard/pkg/httpserver"
	"github.com/axolutions/linkbio-dashboard/pkg/logger"
	"github.com/axolutions/linkbio-dashboard/pkg/mongo"
	"github.com/axolutions/linkbio-dashboard/pkg/pg"
	"github.com/axolutions/linkbio-dashboard/pkg/ratelimiter"
	"github.com/axolutions/linkbio-dashboard/pkg/redis"
	"github.com/axolutions/linkbio-dashboard/pkg/requestid"
	"github.com/axolutions/linkbio-dashboard/pkg/session"
	"github.com/axolutions/linkbio-dashboard/pkg/sso"
	"github.com/axolutions/linkbio-dashboard/pkg/userdata"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

// app is the wired service.
type app struct {
	log     *slog.Logger
	handler http.Handler
	auth    *auth.Service
	checks  map[string]httpserver.Check

	rdb     goredis.UniversalClient
	mdb     *mongodrv.Database
	closers []func(context.Context) error
}

// buildApp connects the configured backends and assembles the router.
// Callers must call close when buildApp succeeds.
func buildApp(ctx context.Context, s settings, out io.Writer) (_ *app, err error) {
	log := logger.New(
		logger.WithEnvironment(s.App.Environment(), s.App.Name),
		logger.WithOutput(out),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			session.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	a := &app{log: log, checks: make(map[string]httpserver.Check)}
	defer func() {
		if err != nil {
			a.close(context.WithoutCancel(ctx))
		}
	}()

	if s.needsRedis() {
		if err := a.connectRedis(ctx); err != nil {
			return nil, err
		}
	}
	if s.needsMongo() {
		if err := a.connectMongo(ctx); err != nil {
			return nil, err
		}
	}

	cookies, err := cookie.New([]string{s.App.SessionSecret})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie manager: %w", err)
	}

	client, err := sso.New(s.SSO, sso.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create sso client: %w", err)
	}

	enricher, err := a.userStore(ctx, s.UserData)
	if err != nil {
		return nil, err
	}

	store, err := a.sessionStore(s.Session)
	if err != nil {
		return nil, err
	}
	sessionOpts := []session.Option{
		session.WithMaxAge(s.Session.MaxAge),
		session.WithLogger(log),
	}
	if enricher != nil {
		sessionOpts = append(sessionOpts, session.WithEnricher(enricher))
	}
	if s.App.Mocked() {
		id, err := auth.LoadFixture(s.App.MockedAuthFixture)
		if err != nil {
			return nil, err
		}
		log.WarnContext(ctx, "mocked auth enabled", logger.Subject(id.Subject))
		sessionOpts = append(sessionOpts, session.WithMockIdentity(id))
	} else if s.App.MockedAuth {
		log.WarnContext(ctx, "MOCKED_AUTH ignored outside development")
	}

	sessions, err := session.NewManager(store,
		session.NewCookieTransport(cookies, s.Session.CookieName, s.Session.SecureCookies),
		client,
		sessionOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	flows, err := a.flowStore(s, cookies)
	if err != nil {
		return nil, err
	}
	authOpts := []auth.Option{
		auth.WithRedirectURI(s.SSO.RedirectURL),
		auth.WithFlowTTL(s.Auth.FlowTTL),
		auth.WithRevokeTimeout(s.Auth.RevokeTimeout),
		auth.WithLogger(log),
	}
	if enricher != nil {
		authOpts = append(authOpts, auth.WithLoginRecorder(enricher))
	}
	a.auth, err = auth.NewService(client, sessions, flows, s.App.BaseURL, authOpts...)
	if err != nil {
		return nil, err
	}

	limiter, err := a.rateLimiter(s.RateLimit)
	if err != nil {
		return nil, err
	}

	eh := account.ErrorHandler(log)
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, sessions.Middleware)
	r.Use(account.Guard(
		account.WithMockedAuth(s.App.Mocked()),
		account.WithBaseURL(a.auth.BaseURL()),
		account.WithGuardErrorHandler(eh),
	))
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, s.HTTP.ProbeTimeout, a.checks))
	r.Mount("/", account.Router(account.RouterOptions{
		Service: a.auth,
		Limiter: limiter,
		Audit:   a.auditLogger(s.Audit),
		Logger:  log,
	}))
	a.handler = r
	return a, nil
}

func (a *app) connectRedis(ctx context.Context) error {
	cfg, err := loadSection[redis.Config]("redis")
	if err != nil {
		return err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.rdb = client
	a.checks["redis"] = redis.Healthcheck(client)
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	return nil
}

func (a *app) connectMongo(ctx context.Context) error {
	cfg, err := loadSection[mongo.Config]("mongo")
	if err != nil {
		return err
	}
	db, err := mongo.ConnectDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	a.mdb = db
	a.checks["mongo"] = mongo.Healthcheck(db.Client())
	a.closers = append(a.closers, db.Client().Disconnect)
	return nil
}

// userStore opens the enrichment datastore. It returns nil when none is
// configured.
func (a *app) userStore(ctx context.Context, cfg userdata.Config) (*userdata.Enricher, error) {
	var store userdata.Store
	switch cfg.Driver {
	case userdata.DriverNone, "":
		return nil, nil
	case userdata.DriverPostgres:
		pgCfg, err := loadSection[pg.Config]("postgres")
		if err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.checks["postgres"] = pg.Healthcheck(pool)
		a.closers = append(a.closers, func(context.Context) error { pool.Close(); return nil })
		store = userdata.NewPostgresStore(pool)
	case userdata.DriverMongo:
		store = userdata.NewMongoStore(a.mdb, cfg.Collection)
	default:
		return nil, errors.Join(errUnknownStore, fmt.Errorf("userdata driver %q", cfg.Driver))
	}

	if cfg.Cached() {
		store = userdata.NewCachedStore(store, cfg.CacheSize, cfg.CacheTTL)
	}
	return userdata.NewEnricher(store, cfg.LookupTimeout), nil
}

func (a *app) sessionStore(cfg session.Config) (session.Store, error) {
	switch cfg.Store {
	case session.StoreMemory:
		store := session.NewMemoryStore(cfg.CleanupInterval)
		a.closers = append(a.closers, func(context.Context) error { return store.Close() })
		return store, nil
	case session.StoreRedis:
		return session.NewRedisStore(a.rdb, cfg.RedisPrefix), nil
	}
	return nil, errors.Join(errUnknownStore, fmt.Errorf("session store %q", cfg.Store))
}

func (a *app) flowStore(s settings, cookies *cookie.Manager) (auth.FlowStore, error) {
	switch s.Auth.FlowStore {
	case auth.FlowStoreCookie:
		return auth.NewCookieFlowStore(cookies, s.Auth.FlowCookieName, s.Auth.FlowTTL, s.Session.SecureCookies), nil
	case auth.FlowStoreRedis:
		return auth.NewRedisFlowStore(a.rdb, s.Auth.FlowRedisPrefix, s.Auth.FlowTTL), nil
	}
	return nil, errors.Join(errUnknownStore, fmt.Errorf("flow store %q", s.Auth.FlowStore))
}

// rateLimiter returns nil when limiting is disabled.
func (a *app) rateLimiter(cfg RateLimitConfig) (ratelimiter.RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	var store ratelimiter.Store
	switch cfg.Store {
	case session.StoreMemory:
		ms := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, func(context.Context) error { ms.Close(); return nil })
		store = ms
	case session.StoreRedis:
		store = ratelimiter.NewRedisStore(a.rdb, cfg.RedisPrefix)
	default:
		return nil, errors.Join(errUnknownStore, fmt.Errorf("rate limit store %q", cfg.Store))
	}
	return ratelimiter.NewBucket(store, cfg.Bucket)
}

func (a *app) auditLogger(cfg audit.Config) *audit.Logger {
	var storage audit.Storage
	switch cfg.Sink {
	case audit.SinkLog:
		storage = audit.NewLogStorage(a.log)
	case audit.SinkMongo:
		storage = audit.NewMongoStorage(a.mdb, cfg.Collection)
	default:
		return nil
	}
	return audit.NewLogger(storage,
		audit.WithSubjectExtractor(func(ctx context.Context) (string, bool) {
			v := session.ViewFromContext(ctx)
			if v.Identity == nil {
				return "", false
			}
			return v.Identity.Subject, true
		}),
		audit.WithSessionIDExtractor(func(ctx context.Context) (string, bool) {
			v := session.ViewFromContext(ctx)
			return v.SessionID, v.SessionID != ""
		}),
	)
}

// close releases backends in reverse order of acquisition.
func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.WarnContext(ctx, "failed to close backend", logger.Error(err))
		}
	}
	a.closers = nil
}
