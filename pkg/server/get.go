package server

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"learngame/pkg/utils"
)

// GET /
func (s *Server) handleGetRoot(c echo.Context) error {
	index := filepath.Join(s.Config.StaticDir, "index.html")
	if utils.Exists(index) {
		return c.File(index)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"service":  "learngame",
		"status":   "ok",
		"llm":      s.Inferencer != nil,
		"frontend": false,
	})
}
