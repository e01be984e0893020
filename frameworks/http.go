package frameworks

import (
	"fmt"
	"time"

	"github.com/shirouto/dsprobe"
	"github.com/shirouto/dsprobe/monitoring"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// HTTP Configurations
var HttpConfig *HttpSettings

// HttpSettings configures the monitoring HTTP server.
type HttpSettings struct {
	Port    string
	Mode    string // gin mode: debug, release, test
	Gzip    bool
	Handler *monitoring.Handler
}

// HTTP service struct
type HttpServer struct {
	server  string
	engine  *gin.Engine
	handler *monitoring.Handler
}

// Initialize service
func (h *HttpServer) init() {
	mode := HttpConfig.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	h.server = fmt.Sprintf(":%s", HttpConfig.Port)
	h.handler = HttpConfig.Handler

	h.engine = gin.New()
	h.engine.SetTrustedProxies(nil)

	var defaultLogFormatter = func(param gin.LogFormatterParams) string {
		var statusColor, methodColor, resetColor string
		if param.IsOutputColor() {
			statusColor = param.StatusCodeColor()
			methodColor = param.MethodColor()
			resetColor = param.ResetColor()
		}

		if param.Latency > time.Minute {
			param.Latency = param.Latency.Truncate(time.Second)
		}

		return fmt.Sprintf("%s[HTTP]%s %v |%s %3d %s| %13v | %15s |%s %-7s %s %#v\n%s",
			"\x1b[90;32m", resetColor,
			param.TimeStamp.Format("2006-01-02 15:04:05"),
			statusColor, param.StatusCode, resetColor,
			param.Latency,
			param.ClientIP,
			methodColor, param.Method, resetColor,
			param.Path,
			param.ErrorMessage,
		)
	}

	h.engine.Use(gin.LoggerWithFormatter(defaultLogFormatter))
	h.engine.Use(gin.Recovery())

	if HttpConfig.Gzip {
		h.engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	h.engine.GET("/health", gin.WrapF(h.handler.HandleHealth))
	h.engine.GET("/health/live", gin.WrapF(h.handler.HandleLiveness))
	h.engine.GET("/metrics/all", gin.WrapF(h.handler.HandleAllMetrics))
	h.engine.GET("/metrics/target", gin.WrapF(h.handler.HandleTargetMetrics))
}

// Run service
func (h *HttpServer) serve() {
	go func(h *HttpServer) {
		err := h.engine.Run(h.server)
		if err != nil {
			dsprobe.LogE(err.Error())
		}

		time.Sleep(time.Second)
		h.serve()
	}(h)
}

func (h *HttpServer) Disconnect() {
	dsprobe.LogI("HTTP Server Stopping ...")

	dsprobe.LogI("HTTP Server Stopped ...")
}

// Start http service
func Http() (disconnectors []func()) {
	if HttpConfig == nil {
		return
	}

	dsprobe.LogI("HTTP Server Starting ...")

	var server HttpServer

	server.init()
	server.serve()

	disconnectors = append(disconnectors, server.Disconnect)

	return
}
