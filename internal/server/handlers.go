package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mathflow-labs/mathflow/internal/solver"
	"github.com/mathflow-labs/mathflow/pkg/parser"
)

type solveRequest struct {
	Text    string   `json:"text"`
	Task    string   `json:"task,omitempty"`
	Vars    []string `json:"vars,omitempty"`
	Extract bool     `json:"extract,omitempty"`
	Explain bool     `json:"explain,omitempty"`
}

type detected struct {
	Kind       string `json:"kind"`
	Normalized string `json:"normalized"`
}

type solveResult struct {
	Solutions  []string `json:"solutions,omitempty"`
	Expression string   `json:"expression,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type solveResponse struct {
	OK        bool         `json:"ok"`
	Task      string       `json:"task,omitempty"`
	Detected  *detected    `json:"detected,omitempty"`
	Variables []string     `json:"variables,omitempty"`
	Result    *solveResult `json:"result,omitempty"`
	Steps     []string     `json:"steps,omitempty"`
	Error     *apiError    `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "text is required")
		return
	}
	task, err := solver.ParseTask(req.Task)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	out, err := s.solver.Solve(ctx, solver.Query{
		Text:    req.Text,
		Task:    task,
		Vars:    req.Vars,
		Extract: req.Extract,
		Explain: req.Explain,
	})
	if err != nil {
		status, code := classify(err)
		s.logger.Warn("solve failed",
			"code", code,
			"error", err,
			"request_id", requestIDFrom(r.Context()))
		writeError(w, status, code, err.Error())
		return
	}

	res := &solveResult{}
	if out.Result.IsSolutions() {
		res.Solutions = make([]string, 0, len(out.Result.Solutions))
		for _, sol := range out.Result.Solutions {
			res.Solutions = append(res.Solutions, sol.String())
		}
	} else {
		res.Expression = out.Result.Expression.String()
	}

	writeJSON(w, http.StatusOK, solveResponse{
		OK:        true,
		Task:      string(out.Task),
		Detected:  &detected{Kind: out.Kind.String(), Normalized: out.Normalized},
		Variables: out.Variables,
		Result:    res,
		Steps:     out.Steps,
	})
}

// classify maps the error taxonomy onto HTTP statuses: rejected input is
// 400, input that parsed but could not be computed is 422, anything else
// 500.
func classify(err error) (int, string) {
	var unsafeErr *parser.UnsafeInputError
	var ambErr *parser.AmbiguousEquationError
	var parseErr *parser.ParseError
	var nfvErr *solver.NoFreeVariableError
	var engErr *solver.EngineError
	switch {
	case errors.As(err, &unsafeErr):
		return http.StatusBadRequest, "unsafe_input"
	case errors.As(err, &ambErr):
		return http.StatusBadRequest, "ambiguous_equation"
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "parse_error"
	case errors.As(err, &nfvErr):
		return http.StatusUnprocessableEntity, "no_free_variable"
	case errors.As(err, &engErr):
		return http.StatusUnprocessableEntity, "engine_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, solveResponse{OK: false, Error: &apiError{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
