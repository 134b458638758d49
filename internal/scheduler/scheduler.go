package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/RsrRuso/cocktailsop-sub017/internal/production"
)

// Scheduler runs the daily expiration sweep: it recomputes the
// freshness status of every sub-recipe's batches and logs the ones
// needing attention. Delivery of actual notifications is owned by an
// external collaborator; this only produces the structured log trail.
type Scheduler struct {
	cron          *cron.Cron
	productionSvc *production.Service
	schedule      string
	logger        *zap.Logger
}

// NewScheduler creates a scheduler. The schedule is a standard 5-field
// cron expression; an empty string defaults to 07:00 daily.
func NewScheduler(productionSvc *production.Service, schedule string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "0 7 * * *"
	}

	return &Scheduler{
		cron:          cron.New(),
		productionSvc: productionSvc,
		schedule:      schedule,
		logger:        logger,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	_, err := s.cron.AddFunc(s.schedule, s.expirationSweep)
	if err != nil {
		s.logger.Error("failed to schedule expiration sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) expirationSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	groups, err := s.productionSvc.ProductionsByRecipe(ctx, now)
	if err != nil {
		s.logger.Error("expiration sweep failed", zap.Error(err))
		return
	}

	expired, soon := 0, 0
	for _, g := range groups {
		switch g.Status {
		case production.StatusExpired:
			expired++
			s.logger.Warn("sub-recipe has expired batches",
				zap.String("sub_recipe_id", g.SubRecipeID),
				zap.Timep("earliest_expiration", g.EarliestExpiration),
			)
		case production.StatusExpiringSoon:
			soon++
			s.logger.Info("sub-recipe expiring soon",
				zap.String("sub_recipe_id", g.SubRecipeID),
				zap.Timep("earliest_expiration", g.EarliestExpiration),
			)
		}
	}

	s.logger.Info("expiration sweep complete",
		zap.Int("recipes", len(groups)),
		zap.Int("expired", expired),
		zap.Int("expiring_soon", soon),
	)
}
