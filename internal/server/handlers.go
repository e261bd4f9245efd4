package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowter/pkg/buildinfo"
	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/graph"
	"github.com/matzehuels/flowter/pkg/pipeline"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatMermaid: "text/plain; charset=utf-8",
}

// inputMediaTypes maps request media types to document formats.
var inputMediaTypes = map[string]graph.Format{
	"application/json":   graph.FormatJSON,
	"application/yaml":   graph.FormatYAML,
	"application/x-yaml": graph.FormatYAML,
	"text/yaml":          graph.FormatYAML,
	"text/x-yaml":        graph.FormatYAML,
	"application/toml":   graph.FormatTOML,
	"text/toml":          graph.FormatTOML,
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, pipeline.FormatJSON)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := queryOr(r, "format", pipeline.FormatSVG)
	switch format {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF:
	default:
		s.fail(w, r, errors.New(errors.ErrCodeInvalidFormat, "render format must be svg, png or pdf, got %q", format))
		return
	}
	s.serve(w, r, format)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := queryOr(r, "format", pipeline.FormatMermaid)
	switch format {
	case pipeline.FormatDOT, pipeline.FormatMermaid:
	default:
		s.fail(w, r, errors.New(errors.ErrCodeInvalidFormat, "export format must be dot or mermaid, got %q", format))
		return
	}
	s.serve(w, r, format)
}

// serve runs the posted document through the pipeline and writes the
// artifact for format.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, format string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE",
				"document exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return
		}
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	opts, err := requestOptions(r, body, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Logger = s.cfg.Logger.With("request_id", middleware.GetReqID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if pipeline.IsCacheable(format) {
		if result.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "HIT")
		} else {
			w.Header().Set("X-Cache", "MISS")
		}
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// requestOptions builds pipeline options from the query string.
func requestOptions(r *http.Request, body []byte, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Input:       body,
		InputFormat: string(inputFormat(r)),
		Mode:        q.Get("mode"),
		Namespace:   q.Get("namespace"),
		Background:  q.Get("background"),
		Formats:     []string{format},
	}

	var err error
	if opts.NoEdges, err = queryBool(r, "no_edges"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = queryBool(r, "detailed"); err != nil {
		return opts, err
	}
	if opts.ValidateDOT, err = queryBool(r, "validate"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = queryBool(r, "refresh"); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		scale, perr := strconv.ParseFloat(v, 64)
		if perr != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

// inputFormat resolves the document encoding of a request.
func inputFormat(r *http.Request) graph.Format {
	if v := r.URL.Query().Get("input"); v != "" {
		return graph.Format(v)
	}
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		if f, ok := inputMediaTypes[mt]; ok {
			return f
		}
	}
	return graph.FormatJSON
}

func queryOr(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func queryBool(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

// =============================================================================
// Responses
// =============================================================================

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	code := errors.GetCode(err)
	switch {
	case errors.IsInputError(err), strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "route", routePattern(r), "error", err,
			"request_id", middleware.GetReqID(r.Context()))
	}
	writeError(w, r, status, code, errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: message},
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
