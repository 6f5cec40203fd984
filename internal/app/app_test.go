package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/platform/resilience"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:               ":0",
		StorageDriver:          config.StorageMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		TokenDefaultTTL:        15 * time.Minute,
		TokenDefaultLength:     6,
		RecurringWorkers:       2,
		LineupDefaultFormation: "1-2-1",
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	server, closeFn, err := NewHTTPServer(memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, closeFn()) })

	req := httptest.NewRequest(http.MethodGet, "/v1/courts", nil)
	req.Header.Set("X-User-ID", "coach-1")
	req.Header.Set("X-User-Role", "coach")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "Central Court")
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, _, err := NewHTTPServer(cfg, logging.NewNop())
	require.Error(t, err)
}

func TestRepositoriesGuarded(t *testing.T) {
	repos, err := newRepositories(memoryConfig(), logging.NewNop())
	require.NoError(t, err)

	guarded := repos.guarded(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}))
	courts, err := guarded.courts.List(t.Context())
	require.NoError(t, err)
	require.Len(t, courts, 3)
}
