package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/report-engine/internal/scoring"
	"github.com/jonathan/report-engine/internal/types"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// maxRequestBody bounds the request JSON; consultant notes are text, never
// megabytes.
const maxRequestBody = 1 << 20

// handleGenerateReport runs the full pipeline for a posted request and
// streams the finished pptx back as a download. Nothing about the request
// or the report is persisted server-side.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	outputDir, err := os.MkdirTemp("", "report-output-")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to allocate output directory")
		return
	}
	defer func() { _ = os.RemoveAll(outputDir) }()

	result, err := s.generator.Generate(r.Context(), req, outputDir)
	if err != nil {
		s.log.Error("report generation failed",
			zap.String("candidate", req.CandidateName),
			zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	f, err := os.Open(result.OutputPath)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "report file missing after generation")
		return
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "report file missing after generation")
		return
	}

	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(result.OutputPath)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	http.ServeContent(w, r, filepath.Base(result.OutputPath), info.ModTime(), f)
}

// handleValidateRequest checks a request without spending an LLM call:
// shape validation plus a dry run of the scoring tables. The response
// includes the composite scores so clients can preview the bars.
func (s *Server) handleValidateRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	if err := req.Validate(); err != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
		return
	}
	composites, err := scoring.AggregateComposites(req.TraitRatings)
	if err != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"valid":            true,
		"composite_scores": composites,
		"output_file":      req.OutputFileName(),
	})
}

// decodeRequest parses and bounds the request body. A false return means an
// error response has already been written.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*types.ReportRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req types.ReportRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil, false
	}
	return &req, true
}
