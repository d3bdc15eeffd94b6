package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-assessor/internal/assessment"
	"github.com/jonathan/candidate-assessor/internal/ingest"
	"github.com/jonathan/candidate-assessor/internal/server/middleware"
	"github.com/jonathan/candidate-assessor/internal/session"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// createSessionRequest is the JSON body for POST /api/v1/sessions.
type createSessionRequest struct {
	Role          string `json:"role" validate:"required"`
	CandidateName string `json:"candidate_name"`
	ResumeText    string `json:"resume_text"`
	ResumeURL     string `json:"resume_url" validate:"omitempty,url"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=10"`
}

// createSessionResponse returns the new session and its access token.
type createSessionResponse struct {
	SessionID string                  `json:"session_id"`
	Token     string                  `json:"token"`
	Status    string                  `json:"status"`
	Profile   *types.CandidateProfile `json:"profile,omitempty"`
	Questions []types.Question        `json:"questions"`
}

// submitAnswerRequest is the JSON body for POST /api/v1/sessions/{id}/answers.
// An empty answer is accepted and scored as such.
type submitAnswerRequest struct {
	QuestionIndex int    `json:"question_index" validate:"required,min=1"`
	Answer        string `json:"answer"`
}

// sessionStatusResponse describes an in-flight session.
type sessionStatusResponse struct {
	SessionID         string           `json:"session_id"`
	Role              string           `json:"role"`
	CandidateName     string           `json:"candidate_name,omitempty"`
	Status            string           `json:"status"`
	QuestionCount     int              `json:"question_count"`
	AnsweredCount     int              `json:"answered_count"`
	NextQuestionIndex int              `json:"next_question_index"`
	Questions         []types.Question `json:"questions"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// handleCreateSession starts a new assessment session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if req.ResumeText != "" && req.ResumeURL != "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text and resume_url are mutually exclusive")
		return
	}

	resumeText := req.ResumeText
	if req.ResumeURL != "" {
		fetched, err := ingest.FromURL(r.Context(), req.ResumeURL, nil)
		if err != nil {
			s.logger.Warn("server: resume fetch failed", zap.String("url", req.ResumeURL), zap.Error(err))
			s.errorResponse(w, http.StatusBadGateway, "failed to fetch resume")
			return
		}
		resumeText = fetched
	}

	sess, err := s.engine.StartSession(r.Context(), assessment.StartRequest{
		Role:          req.Role,
		CandidateName: req.CandidateName,
		ResumeText:    resumeText,
		QuestionCount: req.QuestionCount,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(sess.ID)
	if err != nil {
		s.logger.Error("server: token generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate session token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID.String(),
		Token:     token,
		Status:    sess.Status,
		Profile:   sess.Profile,
		Questions: sess.Questions,
	})
}

// handleSubmitAnswer evaluates one answer against the next open question.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	eval, err := s.engine.SubmitAnswer(r.Context(), id, req.QuestionIndex, req.Answer)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, eval)
}

// handleGetReport returns the aggregated report for a session.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	report, err := s.engine.Report(r.Context(), id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleGetSession returns the status of a session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, sessionStatusResponse{
		SessionID:         sess.ID.String(),
		Role:              sess.Role,
		CandidateName:     sess.CandidateName,
		Status:            sess.Status,
		QuestionCount:     len(sess.Questions),
		AnsweredCount:     sess.AnsweredCount(),
		NextQuestionIndex: sess.NextQuestionIndex(),
		Questions:         sess.Questions,
		CreatedAt:         sess.CreatedAt,
		UpdatedAt:         sess.UpdatedAt,
	})
}

// handleListSessions returns summaries of all stored sessions. Admin only.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": summaries,
		"count":    len(summaries),
	})
}

// handleDeleteSession removes a session and its evaluations. Admin only.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sessionIDFromRequest parses the path id and checks it against the
// authenticated token. Writes the error response itself on failure.
func (s *Server) sessionIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}

	tokenID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	if tokenID != id {
		s.errorResponse(w, http.StatusForbidden, "token does not match session")
		return uuid.Nil, false
	}

	return id, true
}

// withAdminAuth guards the admin routes with the configured bcrypt token.
func (s *Server) withAdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == nil || !s.adminToken.Enabled() {
			s.errorResponse(w, http.StatusForbidden, "admin access disabled")
			return
		}

		token, ok := middleware.BearerToken(r)
		if !ok {
			s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !s.adminToken.VerifyToken(token) {
			s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeEngineError maps engine and store errors to HTTP status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		s.errorResponse(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrCompleted):
		s.errorResponse(w, http.StatusConflict, "session already completed")
	case errors.Is(err, assessment.ErrOutOfOrder):
		s.errorResponse(w, http.StatusConflict, "answer out of order")
	case errors.Is(err, assessment.ErrRoleRequired), errors.Is(err, assessment.ErrQuestionRequired):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("server: internal error", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("server: encoding response failed", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// clientAddr extracts the client identifier from the request. RemoteAddr is
// authoritative here; X-Forwarded-For is only safe behind a trusted proxy.
func clientAddr(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
