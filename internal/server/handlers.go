package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/fetch"
	"github.com/jonathan/job-autofill/internal/pipeline"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/server/middleware"
	"github.com/jonathan/job-autofill/internal/types"
)

// maxBodyBytes caps request bodies; a page plus a profile fits comfortably.
const maxBodyBytes = fetch.DefaultMaxBytes + 1<<20

var timeNow = time.Now

// PageRequest names the page to work on. HTML wins when both are set; URL is
// then only used as the document address.
type PageRequest struct {
	HTML  string `json:"html" validate:"required_without=URL"`
	URL   string `json:"url" validate:"omitempty,url"`
	Debug bool   `json:"debug,omitempty"`
}

// FillRequest is the body of POST /fill and POST /fill/stream.
type FillRequest struct {
	PageRequest
	Profile json.RawMessage `json:"profile,omitempty"`
}

// FillResponse carries the fill summary and the page as it looks afterwards.
type FillResponse struct {
	Summary *types.FillSummary `json:"summary"`
	HTML    string             `json:"html"`
}

// ProfileStatus is the result of POST /profile/validate.
type ProfileStatus struct {
	Valid      bool   `json:"valid"`
	Completion int    `json:"completion"`
	Name       string `json:"name,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc, err := s.loadPage(r, req)
	if err != nil {
		s.failed(w, err)
		return
	}
	defer doc.ClearHighlights()

	report, err := pipeline.Scan(doc, pipeline.Options{Debug: req.Debug, Verbose: s.verbose})
	if err != nil {
		s.failed(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	var req FillRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.fill(r, req, nil)
	if err != nil {
		s.failed(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFillStream runs a fill and streams progress via SSE
func (s *Server) handleFillStream(w http.ResponseWriter, r *http.Request) {
	var req FillRequest
	if !s.decode(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp, err := s.fill(r, req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("progress", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteComplete(resp)
}

func (s *Server) handleProfileTemplate(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="`+profile.ExportFilename(timeNow())+`"`)
	s.jsonResponse(w, http.StatusOK, profile.Template())
}

// handleProfileValidate accepts a JSON or YAML profile document.
func (s *Server) handleProfileValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := profile.DecodeString(string(body))
	if err != nil {
		s.failed(w, err)
		return
	}
	name, _ := profile.ResolveValue(types.CategoryFullName, p)
	s.jsonResponse(w, http.StatusOK, ProfileStatus{Valid: true, Completion: profile.Completion(p), Name: name})
}

// fill resolves the profile, loads the page and runs a fill cycle on it.
func (s *Server) fill(r *http.Request, req FillRequest, onProgress pipeline.ProgressCallback) (*FillResponse, error) {
	p, err := s.requestProfile(req.Profile)
	if err != nil {
		return nil, err
	}

	doc, err := s.loadPage(r, req.PageRequest)
	if err != nil {
		return nil, err
	}

	if client, err := middleware.ClientFrom(r); err == nil && s.verbose {
		log.Printf("[server] fill requested by %s", client)
	}

	// Nothing watches a parsed document, so writes are not paced.
	summary, err := pipeline.Fill(doc, p, pipeline.Options{
		Pace:       -1,
		Verbose:    s.verbose,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, err
	}

	html, err := doc.Render()
	if err != nil {
		return nil, &pipeline.CycleError{Op: types.OpFill, CycleID: summary.CycleID, Message: "render failed", Cause: err}
	}
	return &FillResponse{Summary: summary, HTML: html}, nil
}

// requestProfile decodes the profile carried by a request, falling back to
// the server's default profile.
func (s *Server) requestProfile(raw json.RawMessage) (*types.Profile, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if s.defaultProfile == nil {
			return nil, pipeline.ErrNoProfile
		}
		return s.defaultProfile, nil
	}
	return profile.Decode(raw, profile.FormatJSON)
}

// loadPage parses the submitted HTML or fetches the page at URL.
func (s *Server) loadPage(r *http.Request, req PageRequest) (*dom.Document, error) {
	doc, err := fetch.Document(r.Context(), req.HTML, req.URL, s.fetchOptions)
	switch {
	case errors.Is(err, fetch.ErrNoSource):
		return nil, &ErrValidation{Field: "html", Message: fetch.ErrNoSource.Error()}
	case errors.Is(err, fetch.ErrUnsupportedScheme):
		return nil, &ErrValidation{Field: "url", Message: fetch.ErrUnsupportedScheme.Error()}
	case err != nil:
		return nil, err
	}
	return doc, nil
}

var requestValidator = validator.New()

// decode reads a JSON body into v and validates it, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := requestValidator.Struct(v); err != nil {
		s.failed(w, validationError(err))
		return false
	}
	return true
}

// validationError reports the first failed field of a request.
func validationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required_without":
		return &ErrValidation{Field: field, Message: "html or url is required"}
	case "url":
		return &ErrValidation{Field: field, Message: "must be a valid URL"}
	}
	return &ErrValidation{Field: field, Message: "failed " + fe.Tag() + " check"}
}
