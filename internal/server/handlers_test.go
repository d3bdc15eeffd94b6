package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-assessor/internal/assessment"
	"github.com/jonathan/candidate-assessor/internal/config"
	"github.com/jonathan/candidate-assessor/internal/questions"
	"github.com/jonathan/candidate-assessor/internal/server/ratelimit"
	"github.com/jonathan/candidate-assessor/internal/session"
	"github.com/jonathan/candidate-assessor/internal/types"
)

const testAdminToken = "test-admin-token"

const testResume = `Jane Doe
jane.doe@example.com | San Francisco, CA

SKILLS
Go, Python, PostgreSQL, Kubernetes, AWS

EXPERIENCE
Senior Software Engineer, Acme Corp (2018 - 2024)
- Designed and scaled distributed payment services
- Led a team of four engineers

EDUCATION
B.S. in Computer Science, State University
`

// newTestServer builds a server over in-memory stores. Rate limiting is
// disabled because every httptest request shares one remote address.
func newTestServer(t *testing.T, rl *ratelimit.Config) *Server {
	t.Helper()

	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}

	store := session.NewMemoryStore()
	engine := assessment.NewEngine(store, questions.NewGenerator(nil, nil, nil), nil, nil, assessment.Options{})

	admin := &config.AdminTokenConfig{BcryptCost: 10}
	hash, err := admin.HashToken(testAdminToken)
	require.NoError(t, err)
	admin.Hash = hash

	srv, err := New(config.ServerConfig{Host: "127.0.0.1", Port: 8080}, Deps{
		Engine:    engine,
		Store:     store,
		JWT:       &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
		Admin:     admin,
		RateLimit: rl,
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, srv *Server, body map[string]any) createSessionResponse {
	t.Helper()

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := createSession(t, srv, map[string]any{
		"role":        "backend engineer",
		"resume_text": testResume,
	})

	_, err := uuid.Parse(resp.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, session.StatusActive, resp.Status)
	assert.Len(t, resp.Questions, questions.DefaultCount)

	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Jane Doe", resp.Profile.Name)
}

func TestCreateSession_CustomQuestionCount(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"question_count": 3,
	})
	assert.Len(t, resp.Questions, 3)
}

func TestCreateSession_MissingRole(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"resume_text": testResume,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Role")
}

func TestCreateSession_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCreateSession_QuestionCountOutOfRange(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"role":           "backend engineer",
		"question_count": 50,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "QuestionCount")
}

func TestCreateSession_MutuallyExclusiveResumeInputs(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"role":        "backend engineer",
		"resume_text": testResume,
		"resume_url":  "http://example.com/resume",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "mutually exclusive")
}

func TestCreateSession_ResumeURLFetchFailure(t *testing.T) {
	srv := newTestServer(t, nil)

	// A closed listener guarantees a connection error.
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"role":       "backend engineer",
		"resume_url": deadURL + "/resume",
	})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to fetch resume")
}

func TestCreateSession_ResumeURL(t *testing.T) {
	srv := newTestServer(t, nil)

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(testResume)) //nolint:errcheck
	}))
	defer origin.Close()

	resp := createSession(t, srv, map[string]any{
		"role":       "backend engineer",
		"resume_url": origin.URL + "/resume.txt",
	})

	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Jane Doe", resp.Profile.Name)
}

func TestSubmitAnswer_FullFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"resume_text":    testResume,
		"question_count": 2,
	})

	answer := "I would profile the service first, then optimize the database " +
		"queries and add caching where the measurements show contention. For " +
		"example, at Acme we cut p99 latency by batching writes."

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 1,
		"answer":         answer,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var eval types.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	assert.Equal(t, 1, eval.QuestionIndex)
	assert.Greater(t, eval.OverallScore, 0.0)
	assert.True(t, eval.Decision.Valid())
	assert.False(t, eval.Assisted)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 2,
		"answer":         answer,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/"+created.SessionID+"/report", created.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.AssessmentReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, created.SessionID, report.SessionID)
	assert.Equal(t, 2, report.QuestionCount)
	assert.Equal(t, 2, report.AnsweredCount)
	assert.Greater(t, report.OverallScore, 0.0)
	assert.True(t, report.Verdict.Valid())
}

func TestSubmitAnswer_EmptyAnswerScoresPoor(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"question_count": 1,
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 1,
		"answer":         "",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var eval types.Evaluation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	assert.Equal(t, 20.0, eval.OverallScore)
	assert.Equal(t, types.VerdictNoHire, eval.Decision)
}

func TestSubmitAnswer_OutOfOrder(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"question_count": 3,
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 2,
		"answer":         "skipping ahead",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "out of order")
}

func TestSubmitAnswer_CompletedSession(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"question_count": 1,
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 1,
		"answer":         "done",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", created.Token, map[string]any{
		"question_index": 1,
		"answer":         "again",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "completed")
}

func TestSubmitAnswer_RequiresToken(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role": "backend engineer",
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+created.SessionID+"/answers", "", map[string]any{
		"question_index": 1,
		"answer":         "no token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitAnswer_TokenSessionMismatch(t *testing.T) {
	srv := newTestServer(t, nil)

	first := createSession(t, srv, map[string]any{"role": "backend engineer"})
	second := createSession(t, srv, map[string]any{"role": "data engineer"})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/"+second.SessionID+"/answers", first.Token, map[string]any{
		"question_index": 1,
		"answer":         "wrong session",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not match")
}

func TestSubmitAnswer_InvalidSessionID(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{"role": "backend engineer"})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions/not-a-uuid/answers", created.Token, map[string]any{
		"question_index": 1,
		"answer":         "bad id",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session id")
}

func TestGetSession_Status(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{
		"role":           "backend engineer",
		"resume_text":    testResume,
		"question_count": 4,
	})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/"+created.SessionID, created.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status sessionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, created.SessionID, status.SessionID)
	assert.Equal(t, session.StatusActive, status.Status)
	assert.Equal(t, 4, status.QuestionCount)
	assert.Equal(t, 0, status.AnsweredCount)
	assert.Equal(t, 1, status.NextQuestionIndex)
}

func TestGetReport_UnknownSession(t *testing.T) {
	srv := newTestServer(t, nil)

	// A valid token for a session that does not exist.
	ghost := uuid.New()
	token, err := srv.jwtService.GenerateToken(ghost)
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/"+ghost.String()+"/report", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "session not found")
}

func TestAdminListSessions(t *testing.T) {
	srv := newTestServer(t, nil)

	createSession(t, srv, map[string]any{"role": "backend engineer"})
	createSession(t, srv, map[string]any{"role": "data engineer"})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sessions []session.Summary `json:"sessions"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Sessions, 2)
}

func TestAdminRoutes_RejectBadToken(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions", "wrong-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_DisabledWithoutHash(t *testing.T) {
	store := session.NewMemoryStore()
	engine := assessment.NewEngine(store, questions.NewGenerator(nil, nil, nil), nil, nil, assessment.Options{})

	srv, err := New(config.ServerConfig{Host: "127.0.0.1", Port: 8080}, Deps{
		Engine:    engine,
		Store:     store,
		JWT:       &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions", testAdminToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin access disabled")
}

func TestAdminDeleteSession(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, map[string]any{"role": "backend engineer"})

	rec := doJSON(t, srv.Handler(), http.MethodDelete, "/api/v1/sessions/"+created.SessionID, testAdminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/sessions/"+created.SessionID, created.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteSession_Unknown(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodDelete, "/api/v1/sessions/"+uuid.NewString(), testAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit_CreateSession(t *testing.T) {
	srv := newTestServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  300,
		DefaultWindow: time.Minute,
		Rules: []ratelimit.Rule{
			{Path: "/api/v1/sessions", Method: "POST", Limit: 2, Window: time.Hour, Burst: 1},
		},
	})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"role": "backend engineer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"role": "backend engineer",
	})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPut, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
