package api

import (
	"errors"
	"os"
	"strings"
)

func (s *Server) registerRoutes() error {
	if s == nil || s.router == nil {
		return nil
	}

	api := s.router.Group("/api")
	apiKey := strings.TrimSpace(os.Getenv("STRESS_API_KEY"))
	if apiKey != "" {
		api.Use(apiKeyAuthMiddleware(apiKey))
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("STRESS_DISABLE_AUTH")), "true") {
		// Explicitly allow unauthenticated access.
	} else {
		return errors.New("api: missing auth configuration: set STRESS_API_KEY or set STRESS_DISABLE_AUTH=true")
	}

	api.GET("/health", s.handleHealth)

	api.GET("/cases", s.handleListCases)
	api.GET("/categories", s.handleListCategories)

	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:name", s.handleGetReport)

	return nil
}
