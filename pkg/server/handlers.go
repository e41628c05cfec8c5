package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/evolvingai/relay/pkg/providers"
)

// GenerateRequest is the wire form of POST /v1/generate. Temperature and
// MaxTokens are pointers so "absent" and "zero" stay distinguishable; absent
// fields take the configured defaults.
type GenerateRequest struct {
	Prompt       string              `json:"prompt,omitempty"`
	Messages     []providers.Message `json:"messages,omitempty"`
	SystemPrompt string              `json:"system_prompt,omitempty"`
	Temperature  *float64            `json:"temperature,omitempty"`
	MaxTokens    *int                `json:"max_tokens,omitempty"`
	Provider     string              `json:"provider,omitempty"`
	Options      map[string]any      `json:"options,omitempty"`
}

// GenerateResponse is the wire form of the generation result. Exactly one of
// Text or Error is set.
type GenerateResponse struct {
	RequestID string `json:"request_id"`
	Text      string `json:"text,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Error     string `json:"error,omitempty"`
}

// errorResponse is the body for caller mistakes (4xx).
type errorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req GenerateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			RequestID: requestID(r.Context()),
			Error:     "invalid request body: " + err.Error(),
		})
		return
	}

	if req.Prompt == "" && len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			RequestID: requestID(r.Context()),
			Error:     "either prompt or messages is required",
		})
		return
	}

	genReq := &providers.GenerationRequest{
		Prompt:       req.Prompt,
		Messages:     req.Messages,
		SystemPrompt: req.SystemPrompt,
		Temperature:  s.defaults.Temperature,
		MaxTokens:    s.defaults.MaxTokens,
		Provider:     req.Provider,
		Options:      req.Options,
	}
	if req.Temperature != nil {
		genReq.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		genReq.MaxTokens = *req.MaxTokens
	}

	result, err := s.orchestrator.Generate(r.Context(), genReq)
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; nothing useful to write.
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			RequestID: requestID(r.Context()),
			Error:     err.Error(),
		})
		return
	}

	resp := GenerateResponse{
		RequestID: requestID(r.Context()),
		Text:      result.Text,
		Provider:  result.Provider,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	// Exhaustion is an expected outcome, reported in-band with status 200.
	writeJSON(w, http.StatusOK, resp)
}

// healthzResponse is the body of GET /healthz.
type healthzResponse struct {
	Status    string `json:"status"`
	Providers int    `json:"providers"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	n := len(s.registry.Names())
	resp := healthzResponse{Status: "ok", Providers: n}
	if n == 0 {
		// Alive but useless: every request would exhaust immediately.
		resp.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

// providerStatus is one entry of GET /providers.
type providerStatus struct {
	Name        string `json:"name"`
	Model       string `json:"model"`
	Available   *bool  `json:"available,omitempty"`
	LastError   string `json:"last_error,omitempty"`
	LastChecked string `json:"last_checked,omitempty"`
	LatencyMS   int64  `json:"latency_ms,omitempty"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	records := s.tracker.Records()

	var out []providerStatus
	for name, p := range s.registry.Providers() {
		st := providerStatus{Name: name, Model: p.Model()}
		if rec, ok := records[name]; ok {
			avail := rec.Available
			st.Available = &avail
			st.LastError = rec.LastError
			st.LastChecked = rec.LastChecked.UTC().Format(time.RFC3339)
			st.LatencyMS = rec.Latency.Milliseconds()
		}
		out = append(out, st)
	}

	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
