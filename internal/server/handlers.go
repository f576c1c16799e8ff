package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/pipeline"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

// errBadParam marks query-string values that could not be parsed.
var errBadParam = errors.New("bad parameter")

type trendsResponse struct {
	pipeline.Report
	Cards []actionable.ActionCard `json:"cards"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _ = fmt.Fprint(w, "ok")
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.summary)
}

func (s *Server) handleSkillGroups(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"skill_groups": pipeline.SkillGroups(s.records)})
}

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]pipeline.View{"views": pipeline.Views})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := pipeline.ValidateView(chi.URLParam(r, "view"))
	switch {
	case errors.Is(err, pipeline.ErrViewNotImplemented):
		writeError(w, http.StatusNotImplemented, err)
	case err != nil:
		writeError(w, http.StatusNotFound, err)
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q, err := s.trendsQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	rep, err := pipeline.TopicTrends(s.records, q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.metrics.ObserveReport(rep, string(q.Selection.Mode), time.Since(start))
	writeJSON(w, http.StatusOK, trendsResponse{Report: rep, Cards: actionable.Generate(rep)})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := r.URL.Query()
	from, to, err := s.dateRange(params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	filtered := pipeline.Filter(s.records, from, to, s.skillGroup(params))
	s.metrics.ObserveDuration("agents", time.Since(start))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"skill_group":         filtered.SkillGroup,
		"range_inverted":      filtered.RangeInverted,
		"unknown_skill_group": filtered.UnknownSkillGroup,
		"agents":              aggregator.AgentPerformance(filtered.Records),
	})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	callID := chi.URLParam(r, "callID")
	matches := pipeline.FindCalls(s.records, callID)
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("call %q not found", callID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"call_id": callID, "records": matches})
}

// trendsQuery layers config defaults, then the variant preset, then explicit parameters.
func (s *Server) trendsQuery(params url.Values) (pipeline.Query, error) {
	q := pipeline.Query{
		SkillGroup:         s.skillGroup(params),
		TopicField:         s.cfg.TopicField,
		IncludeEmptyTopics: s.cfg.IncludeEmptyTopics,
		TopK:               s.cfg.TopK,
		MinValuesRequired:  s.cfg.MinValuesRequired,
		Columns:            types.DetailedColumns,
		Selection: selector.Request{
			Count: s.cfg.SelectionCount,
			Mode:  s.cfg.SelectionMode,
			Seed:  s.cfg.SelectionSeed,
		},
	}
	var err error
	if q.Start, q.End, err = s.dateRange(params); err != nil {
		return q, err
	}
	if v := params.Get("variant"); v != "" {
		variant, err := pipeline.LookupVariant(v)
		if err != nil {
			return q, err
		}
		variant.Apply(&q)
	}
	if v := params.Get("topic_field"); v != "" {
		if q.TopicField, err = types.ParseTopicField(v); err != nil {
			return q, err
		}
	}
	if v := params.Get("include_empty"); v != "" {
		if q.IncludeEmptyTopics, err = strconv.ParseBool(v); err != nil {
			return q, fmt.Errorf("%w: include_empty=%q", errBadParam, v)
		}
	}
	if q.TopK, err = intParam(params, "top_k", q.TopK); err != nil {
		return q, err
	}
	if q.TopK < 0 {
		return q, fmt.Errorf("%w: top_k cannot be negative", errBadParam)
	}
	if v := params.Get("time_of_day"); v != "" {
		if q.TimeOfDay, err = types.ParseTimeOfDay(v); err != nil {
			return q, err
		}
	}
	if q.Selection.Count, err = intParam(params, "count", q.Selection.Count); err != nil {
		return q, err
	}
	if v := params.Get("mode"); v != "" {
		if q.Selection.Mode, err = selector.ParseMode(v); err != nil {
			return q, err
		}
	}
	if v := params.Get("seed"); v != "" {
		if q.Selection.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return q, fmt.Errorf("%w: seed=%q", errBadParam, v)
		}
	}
	return q, nil
}

// dateRange defaults to the dataset span; the end bound is the day after the
// latest call so the whole last day is covered.
func (s *Server) dateRange(params url.Values) (time.Time, time.Time, error) {
	from := pipeline.DateOf(s.summary.Earliest)
	to := pipeline.DateOf(s.summary.Latest).AddDate(0, 0, 1)
	var err error
	if v := params.Get("start"); v != "" {
		if from, err = pipeline.ParseDate(v); err != nil {
			return from, to, fmt.Errorf("%w: %v", errBadParam, err)
		}
	}
	if v := params.Get("end"); v != "" {
		if to, err = pipeline.ParseDate(v); err != nil {
			return from, to, fmt.Errorf("%w: %v", errBadParam, err)
		}
	}
	return from, to, nil
}

// skillGroup defaults to the first skill group in the dataset.
func (s *Server) skillGroup(params url.Values) string {
	if v := params.Get("skill_group"); v != "" {
		return v
	}
	if groups := pipeline.SkillGroups(s.records); len(groups) > 0 {
		return groups[0]
	}
	return ""
}

func intParam(params url.Values, key string, def int) (int, error) {
	v := params.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", errBadParam, key, v)
	}
	return n, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadParam),
		errors.Is(err, selector.ErrInvalidSelectionCount),
		errors.Is(err, selector.ErrInvalidSelectionMode),
		errors.Is(err, types.ErrUnknownTimeOfDay),
		errors.Is(err, types.ErrUnknownTopicField),
		errors.Is(err, pipeline.ErrUnknownVariant):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
