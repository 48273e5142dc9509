package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/speednorm/pkg/controller"
	"github.com/umputun/speednorm/pkg/criteria"
	"github.com/umputun/speednorm/pkg/domain"
)

const (
	defaultDecisionsLimit = 50
	maxDecisionsLimit     = 1000
)

// statusHandler returns the controller state along with server info
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Status     string            `json:"status"`
		Version    string            `json:"version"`
		Time       time.Time         `json:"time"`
		Controller controller.Status `json:"controller"`
	}{
		Status:     "ok",
		Version:    s.version,
		Time:       time.Now().UTC(),
		Controller: s.status.Status(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

func (s *Server) getCriteriaHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.criteria.Criteria())
}

// putCriteriaHandler replaces the whole criteria set
func (s *Server) putCriteriaHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.Criteria
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid criteria: %w", err), http.StatusBadRequest)
		return
	}

	res, err := s.criteria.Save(r.Context(), req)
	if err != nil {
		lgr.Printf("[ERROR] failed to save criteria: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func (s *Server) addKeywordHandler(w http.ResponseWriter, r *http.Request) {
	list, ok := keywordList(w, r)
	if !ok {
		return
	}

	var req struct {
		Keyword string `json:"keyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		renderError(w, r, fmt.Errorf("keyword is required"), http.StatusBadRequest)
		return
	}

	res, err := s.criteria.AddKeyword(r.Context(), list, req.Keyword)
	if err != nil {
		s.criteriaError(w, r, "add keyword", err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func (s *Server) removeKeywordHandler(w http.ResponseWriter, r *http.Request) {
	list, ok := keywordList(w, r)
	if !ok {
		return
	}

	res, err := s.criteria.RemoveKeyword(r.Context(), list, r.PathValue("keyword"))
	if err != nil {
		s.criteriaError(w, r, "remove keyword", err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

func (s *Server) resetKeywordsHandler(w http.ResponseWriter, r *http.Request) {
	list, ok := keywordList(w, r)
	if !ok {
		return
	}

	res, err := s.criteria.ResetKeywords(r.Context(), list)
	if err != nil {
		s.criteriaError(w, r, "reset keywords", err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// decisionsHandler returns recent journaled decisions, newest first
func (s *Server) decisionsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultDecisionsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit %q", limitStr), http.StatusBadRequest)
			return
		}
		limit = min(l, maxDecisionsLimit)
	}

	decisions, err := s.decisions.RecentDecisions(r.Context(), limit)
	if err != nil {
		lgr.Printf("[ERROR] failed to get decisions: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if decisions == nil {
		decisions = []domain.Decision{}
	}
	renderJSON(w, r, http.StatusOK, decisions)
}

func (s *Server) criteriaError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, criteria.ErrUnknownList) {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	lgr.Printf("[ERROR] failed to %s: %v", op, err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// keywordList extracts and checks the list path value, renders an error if it is unknown
func keywordList(w http.ResponseWriter, r *http.Request) (domain.KeywordList, bool) {
	list := domain.KeywordList(r.PathValue("list"))
	if !list.Valid() {
		renderError(w, r, fmt.Errorf("unknown keyword list %q", list), http.StatusBadRequest)
		return "", false
	}
	return list, true
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
