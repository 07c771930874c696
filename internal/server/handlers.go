package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/abhisek/examprep/internal/examgen"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req examgen.GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		writeError(w, http.StatusUnprocessableEntity, "subject must not be empty")
		return
	}
	if !req.Difficulty.Valid() {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid difficulty %q", req.Difficulty))
		return
	}

	q, err := s.svc.Generate(r.Context(), examgen.GenerateInput{Subject: subject, Difficulty: req.Difficulty})
	if err != nil {
		s.log.Warn("question generation failed", "subject", subject, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, examgen.NewQuestionPayload(q))
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req examgen.EvaluateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	in := examgen.EvaluateInput{
		Question:      strings.TrimSpace(req.Question),
		CorrectAnswer: strings.TrimSpace(req.CorrectAnswer),
		StudentAnswer: strings.TrimSpace(req.StudentAnswer),
	}
	for _, f := range []struct{ name, value string }{
		{"question", in.Question},
		{"correctAnswer", in.CorrectAnswer},
		{"studentAnswer", in.StudentAnswer},
	} {
		if f.value == "" {
			writeError(w, http.StatusUnprocessableEntity, f.name+" must not be empty")
			return
		}
	}

	ev, err := s.svc.Evaluate(r.Context(), in)
	if err != nil {
		s.log.Warn("answer evaluation failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, examgen.NewEvaluationPayload(ev))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
