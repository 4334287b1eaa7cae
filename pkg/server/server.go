package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"learngame/pkg/config"
	"learngame/pkg/document"
	"learngame/pkg/flight"
	"learngame/pkg/inference"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// MaxUploadSize bounds request bodies.
const MaxUploadSize = "50M"

type Server struct {
	Echo       *echo.Echo
	Inferencer inference.Inferencer
	Extractor  document.Extractor
	Config     *config.Config
	Ctx        context.Context

	// results coalesces uploads of identical files, keyed by content hash.
	results *flight.Cache[string, schema.UploadResult]
}

func NewServer(ctx context.Context, cfg *config.Config, inf inference.Inferencer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(MaxUploadSize))

	s := &Server{
		Echo:       e,
		Inferencer: inf,
		Extractor:  document.PDFExtractor{},
		Config:     cfg,
		Ctx:        ctx,
		results:    flight.NewCache[string, schema.UploadResult](cfg.ResultCacheTTL),
	}
	e.HTTPErrorHandler = s.handleError

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.Static("/static", s.Config.StaticDir)
	s.Echo.POST("/upload", s.handlePostUpload)
}

// handleError renders every failure as the {error, status} payload.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, utils.ErrJSON(msg))
	}
	if err != nil {
		log.Error("writing error response", "error", err)
	}
}

func (s *Server) Start() error {
	log.Info("server listening", "addr", s.Config.Addr)
	return s.Echo.Start(s.Config.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}
