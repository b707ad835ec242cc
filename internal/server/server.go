package server

import (
	"ctchen222/perfect-tic-tac-toe/internal/api/controller"
	"ctchen222/perfect-tic-tac-toe/internal/api/response"
	"ctchen222/perfect-tic-tac-toe/internal/validator"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	engine *gin.Engine
}

// NewServer wires the HTTP routes. gameController may be nil when no game
// ledger is configured; the /v1/games and /v1/stats routes then answer 503.
func NewServer(boardController *controller.BoardController, gameController *controller.GameController) *Server {
	validator.RegisterGinBinding()

	engine := gin.New()
	engine.Use(gin.Recovery(), tracing(), requestLog())

	engine.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")
	{
		board := v1.Group("/board")
		board.GET("/new", boardController.New)
		board.POST("/analyze", boardController.Analyze)
		board.POST("/move", boardController.Move)
		board.POST("/best-move", boardController.BestMove)

		if gameController != nil {
			v1.POST("/games", gameController.Record)
			v1.GET("/games", gameController.List)
			v1.GET("/games/:id", gameController.Get)
			v1.GET("/stats", gameController.Stats)
		} else {
			v1.Any("/games", ledgerDisabled)
			v1.Any("/games/:id", ledgerDisabled)
			v1.Any("/stats", ledgerDisabled)
		}
	}

	return &Server{engine: engine}
}

func (s *Server) Engine() http.Handler {
	return s.engine
}

func ledgerDisabled(c *gin.Context) {
	response.ErrorResponse(c, http.StatusServiceUnavailable, "game ledger is not configured")
}

// tracing starts a server span per request, continuing any trace the caller propagated.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s", c.Request.Method, route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("http.url", c.Request.URL.String()),
			))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "HTTP request",
			"http.method", c.Request.Method,
			"http.path", c.Request.URL.Path,
			"http.status_code", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
