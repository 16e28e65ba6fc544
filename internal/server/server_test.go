package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/gif"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidecard/pkg/export"
	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/pipeline"
)

func newServer(w io.Writer) *Server {
	logger := log.New(w)
	logger.SetLevel(log.DebugLevel)
	runner := pipeline.NewRunner(nil, logger)
	runner.ExportOptions = []export.Option{
		export.WithSleeper(func(context.Context, time.Duration) error { return nil }),
	}
	return New(runner, Config{DefaultStyles: layout.StyleSelection{Emoji: true}}, logger)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newServer(io.Discard).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if id := resp.Header.Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a uuid", id)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}

func TestListFonts(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/fonts")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var fonts []FontResponse
	if err := json.NewDecoder(resp.Body).Decode(&fonts); err != nil {
		t.Fatal(err)
	}
	if len(fonts) != 5 {
		t.Fatalf("fonts = %d, want 5", len(fonts))
	}
	if !fonts[0].Default || fonts[0].Name != "Arial" {
		t.Errorf("first font = %+v", fonts[0])
	}
}

func TestLayoutCard(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/cards/layout", `{"main_text":"abc123","styles":["emoji"],"seed":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var tree layout.VisualTree
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		t.Fatal(err)
	}
	if len(tree.Chars) != 6 || len(tree.Lines) != 0 || len(tree.Emoji) > 50 {
		t.Errorf("tree has %d chars, %d lines, %d emoji", len(tree.Chars), len(tree.Lines), len(tree.Emoji))
	}
	if tree.Canvas != layout.DefaultCanvas {
		t.Errorf("canvas = %+v", tree.Canvas)
	}
}

func TestLayoutDefaultStyles(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/cards/layout", `{"main_text":"x"}`)
	var tree layout.VisualTree
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		t.Fatal(err)
	}
	if tree.Styles != (layout.StyleSelection{Emoji: true}) {
		t.Errorf("styles = %v", tree.Styles)
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode string
	}{
		{"empty text layout", "/api/cards/layout", `{"main_text":""}`, "INVALID_INPUT"},
		{"empty text export", "/api/cards/export", `{"top_text":"hi"}`, "INVALID_INPUT"},
		{"bad style", "/api/cards/layout", `{"main_text":"x","styles":["glitter"]}`, "INVALID_STYLE"},
		{"bad font", "/api/cards/export", `{"main_text":"x","font":"Papyrus"}`, "INVALID_FONT"},
		{"unknown field", "/api/cards/layout", `{"main_text":"x","colour":"red"}`, "INVALID_INPUT"},
		{"not json", "/api/cards/layout", `main_text=x`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if resp.Header.Get("Content-Disposition") != "" {
				t.Error("error response carries an attachment")
			}
			var body ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.RequestID == "" {
				t.Error("missing request_id")
			}
		})
	}
}

func TestExportStatic(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/cards/export", `{"main_text":"abc123","styles":["emoji"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=xhs-image.png" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}
	data, _ := io.ReadAll(resp.Body)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 1000 {
		t.Errorf("size = %v", b.Size())
	}
}

func TestExportAnimated(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/cards/export", `{"main_text":"wechat_id","styles":["lines","emoji","dynamic"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != "attachment; filename=xhs-image.gif" {
		t.Errorf("Content-Disposition = %q", got)
	}
	g, err := gif.DecodeAll(resp.Body)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(g.Image) != export.FrameCount {
		t.Errorf("frames = %d", len(g.Image))
	}
	if g.Config.Width != 600 || g.Config.Height != 750 {
		t.Errorf("size = %dx%d, want 600x750", g.Config.Width, g.Config.Height)
	}
}

func TestRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	h := newServer(&buf).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/cards/layout", strings.NewReader(`{"main_text":"abc"}`))
	req.Header.Set(headerRequestID, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var composed string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "composed card") {
			composed = line
		}
	}
	if !strings.Contains(composed, "request_id=req-42") {
		t.Errorf("composed line = %q, want request_id=req-42", composed)
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header      http.Header
	writeHeader int
	writes      int
}

func (w *brokenWriter) Header() http.Header { return w.header }
func (w *brokenWriter) WriteHeader(int)     { w.writeHeader++ }

func (w *brokenWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, io.ErrClosedPipe
}

func TestExportWriteFailureStopsResponse(t *testing.T) {
	s := newServer(io.Discard)
	req := httptest.NewRequest(http.MethodPost, "/api/cards/export", strings.NewReader(`{"main_text":"abc"}`))
	req = req.WithContext(context.WithValue(req.Context(), requestIDKey, "req-1"))
	w := &brokenWriter{header: http.Header{}}

	s.exportCard(w, req)

	if w.writeHeader != 1 {
		t.Errorf("WriteHeader calls = %d, want 1", w.writeHeader)
	}
	if w.writes != 1 {
		t.Errorf("Write calls = %d, want 1 (no error body after the image)", w.writes)
	}
	if ct := w.header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}
