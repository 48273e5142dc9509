package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/speednorm/pkg/controller"
	"github.com/umputun/speednorm/pkg/criteria"
	"github.com/umputun/speednorm/pkg/domain"
	"github.com/umputun/speednorm/server/mocks"
)

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_statusHandler(t *testing.T) {
	status := &mocks.StatusProviderMock{
		StatusFunc: func() controller.Status {
			return controller.Status{
				ContentID:  "abc",
				Title:      "Artist - Song",
				Phase:      "classified",
				LastResult: &domain.Result{Match: true, Rule: domain.RuleTitleFormat},
				NormalRate: 1.0,
			}
		},
	}
	srv := testServer(t, status, nil, nil)
	srv.version = "1.2.3"

	w := serve(srv, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Status     string            `json:"status"`
		Version    string            `json:"version"`
		Time       time.Time         `json:"time"`
		Controller controller.Status `json:"controller"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.False(t, resp.Time.IsZero())
	assert.Equal(t, "abc", resp.Controller.ContentID)
	assert.Equal(t, "classified", resp.Controller.Phase)
	require.NotNil(t, resp.Controller.LastResult)
	assert.Equal(t, domain.RuleTitleFormat, resp.Controller.LastResult.Rule)
	assert.Len(t, status.StatusCalls(), 1)
}

func TestServer_getCriteriaHandler(t *testing.T) {
	crit := &mocks.CriteriaManagerMock{
		CriteriaFunc: func() domain.Criteria {
			return domain.Criteria{Keywords: []string{"song"}, ExcludeKeywords: []string{}, UseTitlePattern: true}
		},
	}
	srv := testServer(t, nil, crit, nil)

	w := serve(srv, http.MethodGet, "/api/v1/criteria", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.Criteria
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"song"}, got.Keywords)
	assert.Empty(t, got.ExcludeKeywords)
	assert.True(t, got.UseTitlePattern)
	assert.False(t, got.SearchInChannel)
}

func TestServer_putCriteriaHandler(t *testing.T) {
	t.Run("saved", func(t *testing.T) {
		crit := &mocks.CriteriaManagerMock{
			SaveFunc: func(ctx context.Context, c domain.Criteria) (domain.Criteria, error) {
				c.Keywords = []string{"live"} // normalized by the manager
				return c, nil
			},
		}
		srv := testServer(t, nil, crit, nil)

		w := serve(srv, http.MethodPut, "/api/v1/criteria",
			`{"keywords":[" live ","live"],"exclude_keywords":["shorts"],"search_in_channel":true}`)
		assert.Equal(t, http.StatusOK, w.Code)

		require.Len(t, crit.SaveCalls(), 1)
		saved := crit.SaveCalls()[0].C
		assert.Equal(t, []string{" live ", "live"}, saved.Keywords)
		assert.Equal(t, []string{"shorts"}, saved.ExcludeKeywords)
		assert.True(t, saved.SearchInChannel)
		assert.False(t, saved.UseOfficialBadge)

		var got domain.Criteria
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, []string{"live"}, got.Keywords)
	})

	t.Run("invalid json", func(t *testing.T) {
		crit := &mocks.CriteriaManagerMock{}
		srv := testServer(t, nil, crit, nil)

		w := serve(srv, http.MethodPut, "/api/v1/criteria", `{"keywords":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid criteria")
		assert.Empty(t, crit.SaveCalls())
	})

	t.Run("store error", func(t *testing.T) {
		crit := &mocks.CriteriaManagerMock{
			SaveFunc: func(ctx context.Context, c domain.Criteria) (domain.Criteria, error) {
				return domain.Criteria{}, errors.New("database is locked")
			},
		}
		srv := testServer(t, nil, crit, nil)

		w := serve(srv, http.MethodPut, "/api/v1/criteria", `{}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "database is locked")
	})
}

func TestServer_addKeywordHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		err      error
		wantCode int
		wantCall bool
	}{
		{name: "include", path: "/api/v1/keywords/include", body: `{"keyword":"Remix"}`, wantCode: http.StatusOK, wantCall: true},
		{name: "exclude", path: "/api/v1/keywords/exclude", body: `{"keyword":"shorts"}`, wantCode: http.StatusOK, wantCall: true},
		{name: "unknown list", path: "/api/v1/keywords/other", body: `{"keyword":"x"}`, wantCode: http.StatusBadRequest},
		{name: "blank keyword", path: "/api/v1/keywords/include", body: `{"keyword":"   "}`, wantCode: http.StatusBadRequest},
		{name: "bad body", path: "/api/v1/keywords/include", body: `keyword=x`, wantCode: http.StatusBadRequest},
		{name: "manager rejects list", path: "/api/v1/keywords/include", body: `{"keyword":"x"}`,
			err: fmt.Errorf("add keyword: %w", criteria.ErrUnknownList), wantCode: http.StatusBadRequest, wantCall: true},
		{name: "store error", path: "/api/v1/keywords/include", body: `{"keyword":"x"}`,
			err: errors.New("disk full"), wantCode: http.StatusInternalServerError, wantCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crit := &mocks.CriteriaManagerMock{
				AddKeywordFunc: func(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error) {
					if tt.err != nil {
						return domain.Criteria{}, tt.err
					}
					return domain.Criteria{Keywords: []string{keyword}}, nil
				},
			}
			srv := testServer(t, nil, crit, nil)

			w := serve(srv, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if !tt.wantCall {
				assert.Empty(t, crit.AddKeywordCalls())
				return
			}
			require.Len(t, crit.AddKeywordCalls(), 1)
			if tt.err == nil {
				call := crit.AddKeywordCalls()[0]
				assert.Equal(t, domain.KeywordList(strings.TrimPrefix(tt.path, "/api/v1/keywords/")), call.List)
				assert.Contains(t, tt.body, call.Keyword)
			}
		})
	}
}

func TestServer_removeKeywordHandler(t *testing.T) {
	crit := &mocks.CriteriaManagerMock{
		RemoveKeywordFunc: func(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error) {
			return domain.Criteria{Keywords: []string{"song"}}, nil
		},
	}
	srv := testServer(t, nil, crit, nil)

	w := serve(srv, http.MethodDelete, "/api/v1/keywords/include/"+url.PathEscape("音楽"), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(srv, http.MethodDelete, "/api/v1/keywords/include/feat.", "")
	assert.Equal(t, http.StatusOK, w.Code)

	calls := crit.RemoveKeywordCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.ListInclude, calls[0].List)
	assert.Equal(t, "音楽", calls[0].Keyword)
	assert.Equal(t, "feat.", calls[1].Keyword)

	w = serve(srv, http.MethodDelete, "/api/v1/keywords/bogus/song", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, crit.RemoveKeywordCalls(), 2)
}

func TestServer_resetKeywordsHandler(t *testing.T) {
	crit := &mocks.CriteriaManagerMock{
		ResetKeywordsFunc: func(ctx context.Context, list domain.KeywordList) (domain.Criteria, error) {
			if list == domain.ListExclude {
				return domain.Criteria{}, errors.New("write failed")
			}
			return domain.DefaultCriteria(), nil
		},
	}
	srv := testServer(t, nil, crit, nil)

	w := serve(srv, http.MethodPost, "/api/v1/keywords/include/reset", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.Criteria
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.DefaultKeywords, got.Keywords)

	w = serve(srv, http.MethodPost, "/api/v1/keywords/exclude/reset", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "write failed")
}

func TestServer_decisionsHandler(t *testing.T) {
	decidedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var dbErr error
	decisions := &mocks.DecisionStoreMock{
		RecentDecisionsFunc: func(ctx context.Context, limit int) ([]domain.Decision, error) {
			if dbErr != nil {
				return nil, dbErr
			}
			if limit == 1 {
				return nil, nil
			}
			return []domain.Decision{{ID: 2, ContentID: "abc", Title: "Artist - Song", Match: true,
				Rule: domain.RuleTitleFormat, Rate: 1, DecidedAt: decidedAt}}, nil
		},
	}
	srv := testServer(t, nil, nil, decisions)

	w := serve(srv, http.MethodGet, "/api/v1/decisions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.Decision
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ContentID)
	assert.True(t, got[0].DecidedAt.Equal(decidedAt))

	w = serve(srv, http.MethodGet, "/api/v1/decisions?limit=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(srv, http.MethodGet, "/api/v1/decisions?limit=100000", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(srv, http.MethodGet, "/api/v1/decisions?limit=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	calls := decisions.RecentDecisionsCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, defaultDecisionsLimit, calls[0].Limit)
	assert.Equal(t, 10, calls[1].Limit)
	assert.Equal(t, maxDecisionsLimit, calls[2].Limit)

	for _, bad := range []string{"abc", "0", "-5"} {
		w = serve(srv, http.MethodGet, "/api/v1/decisions?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
	assert.Len(t, decisions.RecentDecisionsCalls(), 4)

	dbErr = errors.New("no such table: decisions")
	w = serve(srv, http.MethodGet, "/api/v1/decisions", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	renderJSON(w, nil, http.StatusCreated, map[string]string{"key": "value"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderJSON(w, nil, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, nil, errors.New("boom"), http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderError(w, nil, nil, http.StatusInternalServerError)
	assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())
}
