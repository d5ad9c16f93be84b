package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"friday/internal/email"
	"friday/internal/notifier"
	"friday/internal/recorder"
)

// MethodRouter maps HTTP methods to handlers.
type MethodRouter map[string]http.HandlerFunc

// RouteByMethod dispatches on the request method.
func RouteByMethod(w http.ResponseWriter, r *http.Request, routes MethodRouter) {
	handler, ok := routes[r.Method]
	if !ok {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}
	handler(w, r)
}

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/friday", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{http.MethodPost: s.handleMessage})
	})
	mux.HandleFunc("/api/email", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{http.MethodPost: s.handleEmail})
	})
	mux.HandleFunc("/assets/charts/", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{http.MethodGet: s.handleChart, http.MethodHead: s.handleChart})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

type messageRequest struct {
	Message *string `json:"message"`
}

type messageResponse struct {
	Response       string  `json:"response"`
	ProcessingTime float64 `json:"processing_time"`
	ChartPath      *string `json:"chart_path"`
	RequestID      string  `json:"request_id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No message provided"})
		return
	}
	writeJSON(w, http.StatusOK, s.answer(r.Context(), *req.Message, recorder.ChannelHTTP))
}

// answer runs one message through the processor, splits off the chart
// marker and journals the interaction.
func (s *Server) answer(ctx context.Context, message string, channel recorder.Channel) messageResponse {
	id := uuid.New().String()
	start := time.Now()
	reply, rule := s.proc.Dispatch(ctx, message)
	elapsed := time.Since(start)

	text, chart := notifier.ExtractChart(reply)
	resp := messageResponse{Response: text, ProcessingTime: elapsed.Seconds(), RequestID: id}
	if chart != "" {
		if _, err := os.Stat(s.chartFile(chart)); err != nil {
			log.Error().Str("chart", chart).Msg("chart file not found")
		} else {
			resp.ChartPath = &chart
		}
	}

	log.Info().Str("request_id", id).Str("channel", string(channel)).Str("rule", rule).
		Dur("elapsed", elapsed).Bool("chart", resp.ChartPath != nil).Msg("message handled")
	if err := s.journal.RecordInteraction(&recorder.Interaction{
		At:        start,
		RequestID: id,
		Channel:   channel,
		Rule:      rule,
		Duration:  elapsed,
		Chart:     resp.ChartPath != nil,
		Failed:    strings.HasPrefix(text, "Error: ") || strings.HasPrefix(text, "Sorry, "),
	}); err != nil {
		log.Warn().Err(err).Str("request_id", id).Msg("record interaction failed")
	}
	return resp
}

// chartFile maps a report chart path to the file in ChartDir.
func (s *Server) chartFile(chart string) string {
	return filepath.Join(s.cfg.ChartDir, filepath.Base(chart))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/assets/charts/")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Chart not found"})
		return
	}
	path := filepath.Join(s.cfg.ChartDir, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		log.Warn().Str("chart", name).Msg("chart file not found")
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Chart not found"})
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}

type emailRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No topic provided"})
		return
	}
	draft, err := email.Compose(strings.TrimSpace(req.Topic))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Could not draft email", Details: err.Error()})
		return
	}
	raw, err := draft.EML(time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Could not draft email", Details: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("Content-Disposition", `attachment; filename="draft.eml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}
