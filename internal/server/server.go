package server

import (
	"time"

	"github.com/danmuck/mossdecode/internal/config"
	"github.com/danmuck/mossdecode/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Server exposes the buffer decoders over HTTP. Request bodies are raw
// capture bytes; responses are JSON.
type Server struct {
	Name         string    `json:"name"`
	Addr         string    `json:"addr"`
	MaxBodyBytes int64     `json:"max_body_bytes"`
	Started      time.Time `json:"started"`

	router *gin.Engine
}

func New(cfg config.DaemonConfig) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}
	s := &Server{
		Name:         cfg.Name,
		Addr:         cfg.Addr,
		MaxBodyBytes: maxBody,
		Started:      time.Now(),
		router:       r,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	log.Info().Str("node", s.Name).Str("addr", s.Addr).Msg("mossd listening")
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
