package frameworks

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shirouto/dsprobe/monitoring"
	"github.com/shirouto/dsprobe/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHttpServer(t *testing.T, gzipResponses bool) *HttpServer {
	t.Helper()

	runner := probe.NewRunner()
	scheduler := probe.NewScheduler(runner, time.Minute)
	dashboard := monitoring.NewDashboard(runner, scheduler)

	previous := HttpConfig
	HttpConfig = &HttpSettings{
		Port:    "0",
		Mode:    "test",
		Gzip:    gzipResponses,
		Handler: monitoring.NewHandler(dashboard),
	}
	t.Cleanup(func() { HttpConfig = previous })

	var server HttpServer
	server.init()
	return &server
}

func TestHttpServerGzip(t *testing.T) {
	t.Run("CompressesWhenEnabled", func(t *testing.T) {
		server := setupHttpServer(t, true)

		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		server.engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	})

	t.Run("PlainWhenDisabled", func(t *testing.T) {
		server := setupHttpServer(t, false)

		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		server.engine.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Encoding"))
	})
}
