package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/prompt-stress/internal/config"
)

// Server exposes the dataset and written reports over HTTP, read-only. It
// holds no state of its own; every request reads from disk.
type Server struct {
	router *gin.Engine
	config *config.Config
}

func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("api: nil config")
	}

	r := gin.New()
	s := &Server{
		router: r,
		config: cfg,
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
