package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/de-tools/ba-assistant/pkg/adapters"
	"github.com/de-tools/ba-assistant/pkg/models/api"
	"github.com/de-tools/ba-assistant/pkg/models/domain"
	"github.com/de-tools/ba-assistant/pkg/services/analysis"
	"github.com/de-tools/ba-assistant/pkg/services/export"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 4 << 20

type Handler struct {
	analyzer analysis.Analyzer
}

func NewHandler(analyzer analysis.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.QuestionsRequest
	if !decode(w, r, &req) {
		return
	}

	project := domain.Project{Name: req.ProjectName, Topic: req.ProjectTopic}
	qs, err := h.analyzer.Questions(ctx, project)
	if err != nil {
		logger.Error().
			Err(err).
			Str("project", project.DisplayName()).
			Msg("failed to generate questions")
		status := http.StatusInternalServerError
		if generator.IsTransportError(err) {
			status = http.StatusBadGateway
		}
		writeError(w, r, status, "model server returned an error")
		return
	}

	writeJSON(w, r, http.StatusOK, api.QuestionsResponse{Success: true, Questions: qs})
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.GenerateRequest
	if !decode(w, r, &req) {
		return
	}

	project, interview := adapters.MapGenerateRequestApiToDomain(req)
	result, err := h.analyzer.Generate(ctx, project, interview)
	if err != nil {
		logger.Error().
			Err(err).
			Str("project", project.DisplayName()).
			Msg("failed to generate report")
		status := http.StatusInternalServerError
		if generator.IsTransportError(err) {
			status = http.StatusBadGateway
		}
		writeError(w, r, status, "could not generate analysis")
		return
	}

	logger.Info().
		Str("id", result.ID).
		Str("source", string(result.Source)).
		Str("model", result.ModelInfo).
		Msg("report generated")
	writeJSON(w, r, http.StatusOK, adapters.MapAnalysisDomainToApi(result))
}

// Parse re-parses raw report text, e.g. after the user edited it.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req api.ParseRequest
	if !decode(w, r, &req) {
		return
	}
	report := h.analyzer.Parse(req.Output)
	writeJSON(w, r, http.StatusOK, api.ParseResponse{Report: adapters.MapReportDomainToApi(report)})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req api.ExportRequest
	if !decode(w, r, &req) {
		return
	}

	a := domain.Analysis{
		Project:   domain.Project{Name: req.ProjectName, Topic: req.ProjectTopic},
		Raw:       req.Output,
		Report:    h.analyzer.Parse(req.Output),
		ModelInfo: req.ModelInfo,
	}
	var doc bytes.Buffer
	if err := export.Write(&doc, format, a); err != nil {
		logger.Error().Err(err).Str("format", string(format)).Msg("failed to render export")
		writeError(w, r, http.StatusInternalServerError, "could not render report")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(a.Project, format)))
	if _, err := doc.WriteTo(w); err != nil {
		logger.Error().Err(err).Msg("failed to write export")
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "OK"})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("invalid request body")
		msg := "invalid request body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "request body too large"
		}
		writeError(w, r, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, api.ErrorResponse{Success: false, Error: strings.TrimSpace(msg)})
}
