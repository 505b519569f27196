package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler handles GET /health. Reports whether the document store is
// reachable; always answers 200 so the storefront can degrade gracefully
// instead of treating the probe itself as down.
type HealthHandler struct {
	mongo *mongo.Database
	redis *redis.Client // optional, nil when the throttle store is disabled
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status         string                      `json:"status"`
	StoreConnected bool                        `json:"storeConnected"`
	Timestamp      string                      `json:"timestamp"`
	Dependencies   map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	storeConnected := true

	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		storeConnected = false
	} else {
		deps["mongodb"] = dependencyStatus{Status: "ok"}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	if !storeConnected {
		status = "degraded"
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:         status,
		StoreConnected: storeConnected,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Dependencies:   deps,
	})
}
