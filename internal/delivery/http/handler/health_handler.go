package handler

import (
	"context"
	"net/http"
	"time"

	"holo-api/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
	log         *logrus.Logger
}

// NewHealthHandler accepts a nil redisClient; Redis is then reported as disabled.
func NewHealthHandler(db *gorm.DB, redisClient redis.UniversalClient, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Check reports dependency health. Only the database is required; Redis
// backs login throttling, which fails open.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := healthStatus{Status: "ok", Database: "up", Redis: "disabled"}

	if err := h.pingDB(ctx); err != nil {
		h.log.WithError(err).Error("Health check: database unreachable")
		status.Status = "unavailable"
		status.Database = "down"
	}

	if h.redisClient != nil {
		status.Redis = "up"
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			h.log.WithError(err).Warn("Health check: redis unreachable")
			status.Redis = "down"
			if status.Status == "ok" {
				status.Status = "degraded"
			}
		}
	}

	if status.Database == "down" {
		response.ServiceUnavailable(w, "Database unavailable", status)
		return
	}

	response.Success(w, http.StatusOK, "Service healthy", status)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
