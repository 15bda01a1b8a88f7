package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/a2zdsa/atlas/internal/atlas"
	"github.com/a2zdsa/atlas/internal/search"
	"github.com/a2zdsa/atlas/internal/usecase"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if run, err := s.atlas.LastRebuild(r.Context()); err == nil {
		resp["last_rebuild"] = run.FinishedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subsections, err := optionalBool(q.Get("subsections"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	topics, err := s.atlas.Topics(r.Context(), usecase.TopicFilter{
		Section:            q.Get("section"),
		Status:             atlas.TopicStatus(q.Get("status")),
		IncludeSubsections: subsections,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := s.atlas.Topic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleMappings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := s.atlas.Mappings(r.Context(), usecase.MappingFilter{
		Status:  atlas.MatchStatus(q.Get("status")),
		Section: q.Get("section"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleMapping(w http.ResponseWriter, r *http.Request) {
	record, err := s.atlas.Mapping(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	report, err := s.atlas.Coverage(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.atlas.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type studyPlanResponse struct {
	Plan    atlas.StudyPlan   `json:"plan"`
	Summary atlas.PlanSummary `json:"summary"`
}

func (s *Server) handleStudyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.atlas.Plan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, studyPlanResponse{Plan: plan, Summary: plan.Summary()})
}

type dayResponse struct {
	Date         string            `json:"date"`
	DayName      string            `json:"day_name"`
	Tasks        []atlas.StudyTask `json:"tasks"`
	TotalMinutes int               `json:"total_minutes"`
}

func (s *Server) handleStudyPlanToday(w http.ResponseWriter, r *http.Request) {
	day, err := s.atlas.TodayPlan(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	tasks := day.Tasks
	if tasks == nil {
		tasks = []atlas.StudyTask{}
	}
	writeJSON(w, http.StatusOK, dayResponse{
		Date:         day.Date.Format(atlas.DateLayout),
		DayName:      day.DayName,
		Tasks:        tasks,
		TotalMinutes: day.Minutes(),
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	withPlan, err := optionalBool(q.Get("plan"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := usecase.RebuildOptions{RegeneratePlan: withPlan}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: seed must be an unsigned integer", usecase.ErrInvalidInput))
			return
		}
		opts.Plan.Seed = &seed
	}

	result, err := s.atlas.Rebuild(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := search.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = n
	}
	hits, err := s.atlas.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	records, err := s.atlas.Progress(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type completeRequest struct {
	Minutes int    `json:"minutes"`
	Notes   string `json:"notes"`
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	record, err := s.atlas.CompleteTask(r.Context(), chi.URLParam(r, "taskID"), req.Minutes, req.Notes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleReopenTask(w http.ResponseWriter, r *http.Request) {
	if err := s.atlas.ReopenTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = n
	}
	runs, err := s.atlas.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func optionalBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", usecase.ErrInvalidInput, raw)
	}
	return v, nil
}
