package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/sink"
)

// Response headers set on render responses.
const (
	HeaderRenderID = "X-Render-ID"
	HeaderCache    = "X-Cache"
	HeaderPlaced   = "X-Words-Placed"
)

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": pipeline.ValidFormats()})
}

// handleRender runs the full pipeline on the request and returns a single
// artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(HeaderRenderID, id)
	logger := s.logger.With("render_id", id)

	opts, err := s.decodeRender(w, r)
	if err == nil {
		err = opts.ValidateAndSetDefaults()
	}
	if err == nil && len(opts.Formats) != 1 {
		err = errors.New(errors.ErrCodeInvalidFormat, "exactly one format per request, got %d", len(opts.Formats))
	}
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if !errors.IsClientError(err) {
			logger.Error("render failed", "error", err)
		}
		s.writeError(w, id, err)
		return
	}

	format := opts.Formats[0]
	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	logger.Info("rendered",
		"format", format,
		"words", result.Stats.Placed,
		"cached", cached,
		"duration", result.Stats.ReadTime+result.Stats.LayoutTime+result.Stats.RenderTime)

	data := result.Artifacts[format]
	h := w.Header()
	h.Set("Content-Type", sink.ContentType(format))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set(HeaderPlaced, strconv.Itoa(result.Stats.Placed))
	h.Set(HeaderCache, cacheStatus(cached))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decodeRender builds options from the request body and query string.
// Query parameters override fields of a JSON body.
func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return opts, decodeError(err)
		}
		if opts.Input != "" {
			return opts, errors.New(errors.ErrCodeInvalidInput, "input files are not accepted over HTTP; send the text instead")
		}
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			return opts, decodeError(err)
		}
		opts.Text = string(data)
	}

	if err := applyQuery(r.URL.Query(), &opts); err != nil {
		return opts, err
	}
	if opts.Text == "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return opts, nil
}

// decodeError keeps size limit violations recognizable for writeError.
func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error    errorBody `json:"error"`
	RenderID string    `json:"render_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps err to a status code and writes it as JSON. Internal
// errors are not echoed to the client.
func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	status := statusFor(err)
	body := errorBody{Code: string(errors.GetCode(err)), Message: errors.UserMessage(err)}

	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		body.Code = "BODY_TOO_LARGE"
		body.Message = "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes"
	case stderrors.Is(err, context.DeadlineExceeded):
		body.Code = "TIMEOUT"
		body.Message = "render timed out"
	case stderrors.Is(err, context.Canceled):
		body.Code = "CANCELED"
		body.Message = "request canceled"
	case status == http.StatusInternalServerError:
		body.Code = string(errors.ErrCodeInternal)
		body.Message = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: body, RenderID: id})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, errors.ErrCodeNoWords):
		return http.StatusUnprocessableEntity
	case errors.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
