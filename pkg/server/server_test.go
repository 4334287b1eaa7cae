package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learngame/pkg/config"
	"learngame/pkg/document"
	"learngame/pkg/learning"
	"learngame/pkg/schema"
)

type panickingExtractor struct {
	calls atomic.Int32
}

func (p *panickingExtractor) ExtractText(string) (string, error) {
	p.calls.Add(1)
	panic("loading 2 0 R: found pdf.keyword instead of objdef")
}

type ctxInferencer struct {
	cancelled atomic.Bool
}

func (c *ctxInferencer) Infer(ctx context.Context, _ *openai.ChatCompletionNewParams, _, _ string) (string, error) {
	if ctx.Err() != nil {
		c.cancelled.Store(true)
	}
	return "", ctx.Err()
}

type stubExtractor struct {
	text  string
	err   error
	calls atomic.Int32
}

func (s *stubExtractor) ExtractText(path string) (string, error) {
	s.calls.Add(1)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return s.text, s.err
}

func newTestServer(t *testing.T, ext document.Extractor, ttl time.Duration) *Server {
	t.Helper()
	cfg := &config.Config{
		Addr:              ":0",
		MaterialsDir:      filepath.Join(t.TempDir(), "materials"),
		StaticDir:         t.TempDir(),
		DistractorWorkers: 1,
		ResultCacheTTL:    ttl,
	}
	s := NewServer(context.Background(), cfg, nil)
	s.Extractor = ext
	return s
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["error"])
	return body
}

func TestGetRoot_Status(t *testing.T) {
	s := newTestServer(t, &stubExtractor{}, 0)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"service":"learngame","status":"ok","llm":false,"frontend":false}`, rec.Body.String())
}

func TestGetRoot_ServesIndex(t *testing.T) {
	s := newTestServer(t, &stubExtractor{}, 0)
	require.NoError(t, os.WriteFile(filepath.Join(s.Config.StaticDir, "index.html"), []byte("<h1>learn</h1>"), 0o644))

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>learn</h1>", rec.Body.String())
}

func TestUpload_MissingFile(t *testing.T) {
	s := newTestServer(t, &stubExtractor{}, 0)
	rec := serve(s, uploadRequest(t, "document", "notes.pdf", []byte("%PDF")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeError(t, rec)
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	ext := &stubExtractor{text: learning.SampleText}
	s := newTestServer(t, ext, 0)
	rec := serve(s, uploadRequest(t, "file", "notes.txt", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeError(t, rec)
	assert.Zero(t, ext.calls.Load())
}

func TestUpload_Unreadable(t *testing.T) {
	for name, ext := range map[string]*stubExtractor{
		"no text":    {err: document.ErrNoText},
		"broken pdf": {err: errors.New("malformed xref")},
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, ext, 0)
			rec := serve(s, uploadRequest(t, "file", "scan.pdf", []byte("%PDF-1.4")))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			decodeError(t, rec)
		})
	}
}

func TestUpload_Success(t *testing.T) {
	text := learning.SampleText + strings.Repeat(" more", 200)
	ext := &stubExtractor{text: text}
	s := newTestServer(t, ext, 0)

	rec := serve(s, uploadRequest(t, "file", "Myths.PDF", []byte("%PDF-1.4 myths")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result schema.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Myths.PDF", result.Filename)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, []rune(text)[:TextPreviewRunes], []rune(strings.TrimSuffix(result.TextPreview, "...")))
	assert.True(t, result.ContentAnalysis.ClassificationFailed)
	assert.Zero(t, result.AllMaterials.Stats.TotalCharacters)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `{"characters":[],"events":[],"locations":[],"objects":[]}`, string(raw["structured_data"]))

	entries, err := os.ReadDir(s.Config.MaterialsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, result.ID+"_Myths.PDF", entries[0].Name())
}

func TestUpload_IdenticalFilesReuseResult(t *testing.T) {
	ext := &stubExtractor{text: learning.SampleText}
	s := newTestServer(t, ext, time.Hour)

	first := serve(s, uploadRequest(t, "file", "a.pdf", []byte("same bytes")))
	second := serve(s, uploadRequest(t, "file", "b.pdf", []byte("same bytes")))
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, int32(1), ext.calls.Load())

	var a, b schema.UploadResult
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, "a.pdf", a.Filename)
	assert.Equal(t, "b.pdf", b.Filename)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.AllMaterials, b.AllMaterials)

	serve(s, uploadRequest(t, "file", "c.pdf", []byte("other bytes")))
	assert.Equal(t, int32(2), ext.calls.Load())
}

func TestUpload_ShortTextPreviewHasEllipsis(t *testing.T) {
	s := newTestServer(t, &stubExtractor{text: "A short but readable text."}, 0)
	rec := serve(s, uploadRequest(t, "file", "short.pdf", []byte("%PDF")))
	require.Equal(t, http.StatusOK, rec.Code)

	var result schema.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "A short but readable text....", result.TextPreview)
}

func TestUpload_PanickingExtractorIsUnreadable(t *testing.T) {
	ext := &panickingExtractor{}
	s := newTestServer(t, ext, time.Hour)

	for range 2 {
		req := uploadRequest(t, "file", "broken.pdf", []byte("%PDF-1.4 broken"))
		done := make(chan *httptest.ResponseRecorder, 1)
		go func() { done <- serve(s, req) }()

		select {
		case rec := <-done:
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			decodeError(t, rec)
		case <-time.After(5 * time.Second):
			t.Fatal("upload of a previously failing file never returned")
		}
	}
	assert.Equal(t, int32(2), ext.calls.Load())
}

func TestUpload_ServerContextBoundsModelCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inf := &ctxInferencer{}
	cfg := &config.Config{
		MaterialsDir:      t.TempDir(),
		StaticDir:         t.TempDir(),
		DistractorWorkers: 1,
	}
	s := NewServer(ctx, cfg, inf)
	s.Extractor = &stubExtractor{text: learning.SampleText}

	rec := serve(s, uploadRequest(t, "file", "myths.pdf", []byte("%PDF")))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, inf.cancelled.Load())
}
