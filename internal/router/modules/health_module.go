package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
)

// HealthPath is exempt from rate limiting.
const HealthPath = "/health"

const codeServiceUnavailable = "SERVICE_UNAVAILABLE"

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Services    map[string]string `json:"services"`
}

// HealthModule serves GET /health and GET / at the engine root.
// DB is nil for the memory driver.
type HealthModule struct {
	AppName string
	Version string
	Env     string
	DB      Pinger
	Timeout time.Duration
}

func NewHealthModule(appName, version, env string, db Pinger) *HealthModule {
	return &HealthModule{AppName: appName, Version: version, Env: env, DB: db, Timeout: 2 * time.Second}
}

func (m *HealthModule) Name() string { return "health" }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET(HealthPath, m.health)
	rg.GET("/", m.root)
}

func (m *HealthModule) health(c *gin.Context) {
	st := HealthStatus{
		Status:      "healthy",
		Version:     m.Version,
		Environment: m.Env,
		Services:    map[string]string{"database": "memory"},
	}
	if m.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), m.Timeout)
		defer cancel()
		if err := m.DB.Ping(ctx); err != nil {
			st.Status = "unhealthy"
			st.Services["database"] = "disconnected"
			response.Error(c, http.StatusServiceUnavailable, codeServiceUnavailable, "database unreachable", st)
			return
		}
		st.Services["database"] = "connected"
	}
	response.Success(c, http.StatusOK, st, "")
}

func (m *HealthModule) root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"name":       m.AppName,
		"version":    m.Version,
		"health_url": HealthPath,
	}, "Welcome to "+m.AppName)
}
