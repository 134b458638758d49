package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RsrRuso/cocktailsop-sub017/internal/costing"
	"github.com/RsrRuso/cocktailsop-sub017/internal/db"
	"github.com/RsrRuso/cocktailsop-sub017/internal/production"
	"github.com/RsrRuso/cocktailsop-sub017/internal/router"
	"github.com/RsrRuso/cocktailsop-sub017/internal/scheduler"
	"github.com/RsrRuso/cocktailsop-sub017/pkg/logger"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	zlog := logger.Must(logger.New())
	defer zlog.Sync()

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── COSTING ─────────────────────────
	defaultBottleMl := envFloat("DEFAULT_BOTTLE_ML", costing.DefaultBottleMl)

	calc := costing.NewCalculator(
		envFloat("TARGET_FOOD_COST_RATIO", costing.DefaultTargetFoodCostRatio),
		defaultBottleMl,
	)
	cache := costing.NewCache(calc, envDuration("COST_CACHE_TTL", 5*time.Minute))
	costingHandler := costing.NewHandler(cache, defaultBottleMl)

	// ───────────────────────── PRODUCTION ─────────────────────────
	productionRepo := production.NewPostgresRepository(pgDB)
	productionService := production.NewService(productionRepo, envList("LOSS_REASONS"))
	productionHandler := production.NewHandler(productionService)

	// ───────────────────────── SCHEDULER ─────────────────────────
	sweep := scheduler.NewScheduler(
		productionService,
		os.Getenv("EXPIRATION_SWEEP_CRON"),
		logger.Named(zlog, "scheduler"),
	)
	sweep.Start()
	defer sweep.Stop()

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(costingHandler, productionHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// ───────────────────────── START ─────────────────────────
	zlog.Info("API running", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// --------------------------------------------------
func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("❌ Invalid %s: %q", key, raw)
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("❌ Invalid %s: %q", key, raw)
	}
	return v
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
