package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"pixgate/internal/db"
	"pixgate/internal/gateway"
	"pixgate/internal/pix"
	"pixgate/internal/ratelimiter"
	"pixgate/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "1.0.0"

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 20
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	maxConns := int32(10)
	if val, exists := os.LookupEnv("DB_MAX_CONNS"); exists {
		parsedVal, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("Invalid value for DB_MAX_CONNS: %v", err)
		}
		maxConns = int32(parsedVal)
	}

	gatewayTimeout := time.Duration(0)
	if val, exists := os.LookupEnv("GATEWAY_HTTP_TIMEOUT"); exists {
		parsedVal, err := time.ParseDuration(val)
		if err != nil {
			log.Fatalf("Invalid value for GATEWAY_HTTP_TIMEOUT: %v", err)
		}
		gatewayTimeout = parsedVal
	}

	cfg := config{
		addr: os.Getenv("ADDR"),
		env:  os.Getenv("ENV"),
		db: dbConfig{
			addr:        os.Getenv("DATABASE_URL"),
			maxConns:    maxConns,
			maxIdleTime: envOr("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter:    LoadRateLimiterConfig(),
		gatewayTimeout: gatewayTimeout,
	}
	if cfg.addr == "" {
		cfg.addr = ":8080"
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	if err := store.Migrate(context.Background(), pool); err != nil {
		logger.Fatal(err)
	}

	storage := store.NewStorage(pool)

	// Provider adapters share one HTTP client. A zero timeout keeps the
	// call blocked until the provider answers.
	gatewayClient := &http.Client{Timeout: cfg.gatewayTimeout}
	ids := gateway.SystemIDSource()

	gateways := gateway.NewManager()
	gateways.Register(string(store.ProviderOasyfy), gateway.NewOasyfyAdapter(gatewayClient, ids))
	gateways.Register(string(store.ProviderPushinPay), gateway.NewPushinPayAdapter(gatewayClient, ids))
	gateways.Register(string(store.ProviderGhostPay), gateway.NewGhostPayAdapter(gatewayClient, ids))

	dispatcher := pix.NewDispatcher(storage.Providers, gateways, logger)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		store:       storage,
		dispatcher:  dispatcher,
		logger:      logger,
		rateLimiter: rateLimiter,
	}

	// Metrics collected at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		stat := pool.Stat()
		return map[string]any{
			"total_conns":    stat.TotalConns(),
			"idle_conns":     stat.IdleConns(),
			"acquired_conns": stat.AcquiredConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}

func envOr(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}
