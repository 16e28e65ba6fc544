package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/guidecard/pkg/buildinfo"
	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/export"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/pipeline"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// FontResponse describes one selectable family.
type FontResponse struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	body := buildinfo.Map()
	body["status"] = "ok"
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) listFonts(w http.ResponseWriter, _ *http.Request) {
	var out []FontResponse
	for _, f := range fonts.Families() {
		out = append(out, FontResponse{Name: f.Name, Label: f.Label, Default: f.Name == fonts.DefaultFamily})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) layoutCard(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tree, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) exportCard(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tree, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_, err = s.runner.Export(r.Context(), tree, export.ResponseDownloader{W: w}, export.WithLogger(opts.Logger))
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrCodeDownload):
		// Headers and part of the body are already out.
		opts.Logger.Warn("response write failed", "err", err)
	default:
		s.writeError(w, r, err)
	}
}

// decodeOptions reads a card request and fills server-side defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		if errors.GetCode(err) != "" {
			return opts, err
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if opts.Styles == nil {
		sel := s.cfg.DefaultStyles
		opts.Styles = &sel
	}
	opts.Canvas = s.cfg.Canvas
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.IsInvalid(err):
		status, msg = http.StatusBadRequest, errors.UserMessage(err)
	case errors.Is(err, errors.ErrCodeCapture), errors.Is(err, errors.ErrCodeAssembly):
		msg = "export failed"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Code: string(errors.GetCode(err)), RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
