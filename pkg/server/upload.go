package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"

	"learngame/pkg/learning"
	"learngame/pkg/schema"
	"learngame/pkg/utils"
)

// TextPreviewRunes caps the text preview returned with an upload. The preview
// always ends in "...".
const TextPreviewRunes = 500

// ErrUnreadableDocument marks uploads whose text could not be extracted.
var ErrUnreadableDocument = errors.New("could not extract text from the document")

// POST /upload
func (s *Server) handlePostUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing form file \"file\"")
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return echo.NewHTTPError(http.StatusBadRequest, "only PDF files are supported")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	data, err := io.ReadAll(src)
	_ = src.Close()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	ctx, cancel := s.workContext(c.Request().Context())
	defer cancel()
	result, err := s.results.Get(key, func() (schema.UploadResult, error) {
		return s.process(ctx, file.Filename, data)
	})
	switch {
	case errors.Is(err, ErrUnreadableDocument):
		log.Warn("rejecting upload", "filename", file.Filename, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return err
	}

	// A shared result keeps the stored file's id but reports this caller's name.
	result.Filename = file.Filename
	return c.JSON(http.StatusOK, result)
}

// workContext detaches upload work from the request, so callers joined to a
// coalesced upload are not failed by the first caller leaving, and ties it to
// the server context instead, so shutdown cuts in-flight model calls short.
func (s *Server) workContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(req))
	if s.Ctx == nil {
		return ctx, cancel
	}
	stop := context.AfterFunc(s.Ctx, cancel)
	if s.Ctx.Err() != nil {
		cancel()
	}
	return ctx, func() {
		stop()
		cancel()
	}
}

// extractText runs the extractor and reports a panic as an unreadable document.
func (s *Server) extractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: extractor panicked: %v", ErrUnreadableDocument, r)
		}
	}()

	text, err = s.Extractor.ExtractText(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadableDocument, err)
	}
	return text, nil
}

// process stores the document, extracts its entities and builds all materials.
func (s *Server) process(ctx context.Context, filename string, data []byte) (schema.UploadResult, error) {
	id := ksuid.New().String()

	if err := os.MkdirAll(s.Config.MaterialsDir, 0o755); err != nil {
		return schema.UploadResult{}, fmt.Errorf("creating materials dir: %w", err)
	}
	path := filepath.Join(s.Config.MaterialsDir, id+"_"+utils.SanitizeFilename(filepath.Base(filename)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return schema.UploadResult{}, fmt.Errorf("saving upload: %w", err)
	}
	log.Info("upload saved", "path", path, "bytes", len(data))

	text, err := s.extractText(path)
	if err != nil {
		return schema.UploadResult{}, err
	}

	store, err := learning.ExtractEntities(ctx, s.Inferencer, text)
	if err != nil {
		log.Warn("entity extraction failed, continuing with empty store", "error", err)
	}
	store = store.Normalized()

	engine := learning.NewEngine(store, text,
		learning.WithInferencer(s.Inferencer),
		learning.WithWorkers(s.Config.DistractorWorkers),
	)
	materials := engine.CreateAllMaterials(ctx)

	return schema.UploadResult{
		ID:              id,
		Filename:        filename,
		TextPreview:     utils.Truncate(text, TextPreviewRunes) + "...",
		StructuredData:  store,
		ContentAnalysis: materials.ContentAnalysis,
		AllMaterials:    materials,
		Status:          "success",
	}, nil
}
