// paasd es el servidor HTTP de la plataforma.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kish38/paas-api/internal/cache"
	"github.com/kish38/paas-api/internal/config"
	httpx "github.com/kish38/paas-api/internal/http"
	"github.com/kish38/paas-api/internal/http/controllers"
	"github.com/kish38/paas-api/internal/http/router"
	"github.com/kish38/paas-api/internal/observability/logger"
	"github.com/kish38/paas-api/internal/rate"
	"github.com/kish38/paas-api/internal/service"
	"github.com/kish38/paas-api/internal/store"
	"github.com/kish38/paas-api/internal/store/pg"
	"github.com/kish38/paas-api/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("no se pudo leer .env: %v", err)
	}

	cfgPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "ruta del archivo de configuración")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "paasd",
	})
	defer logger.Sync()
	lg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pg.Config{
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		lg.Fatal("no se pudo abrir el store", logger.Err(err))
	}
	defer func() { _ = st.Close() }()
	lg.Info("store abierto", logger.String("driver", cfg.Storage.Driver))

	svc := service.New(st)
	issuer := token.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.AccessTTL())
	actors := cache.NewAccounts(st.Accounts(), cfg.ActorCacheTTL())

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		limiter = buildLimiter(ctx, cfg, lg)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		h, err := httpx.RegisterMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			lg.Fatal("no se pudieron registrar las métricas", logger.Err(err))
		}
		metricsHandler = h
	}

	handler := router.New(router.Deps{
		Controllers:  controllers.New(svc, issuer, actors, st),
		Issuer:       issuer,
		Actors:       actors,
		LoginLimiter: limiter,
		Metrics:      metricsHandler,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("servidor escuchando", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("apagando servidor")
		shctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shctx)
	})

	if err := g.Wait(); err != nil {
		lg.Fatal("servidor terminó con error", logger.Err(err))
	}
	lg.Info("servidor apagado")
}

// buildLimiter arma el limitador de login según el backend configurado.
// Si redis no responde al arranque se degrada a memoria: una réplica
// limitando sola es mejor que no limitar.
func buildLimiter(ctx context.Context, cfg *config.Config, lg *zap.Logger) rate.Limiter {
	if cfg.Rate.Backend == "redis" && cfg.Rate.Redis.Addr != "" {
		client := rdb.NewClient(&rdb.Options{
			Addr:     cfg.Rate.Redis.Addr,
			Password: cfg.Rate.Redis.Password,
			DB:       cfg.Rate.Redis.DB,
		})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			lg.Warn("redis no disponible, rate limit en memoria", logger.Err(err))
			_ = client.Close()
		} else {
			lg.Info("rate limit con backend redis", logger.String("addr", cfg.Rate.Redis.Addr))
			return rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, cfg.Rate.Login.Limit, cfg.LoginWindow())
		}
	}
	return rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginWindow())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
