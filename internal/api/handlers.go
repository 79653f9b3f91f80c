// Package api exposes the Neo Nomad flow as a thin JSON surface. All
// business behavior lives in the wrapped components; handlers only decode
// input, dispatch and shape responses.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tjfontaine/neo-nomad/internal/country"
	"github.com/tjfontaine/neo-nomad/internal/domain"
	"github.com/tjfontaine/neo-nomad/internal/negotiation"
	"github.com/tjfontaine/neo-nomad/internal/server"
	"github.com/tjfontaine/neo-nomad/internal/session"
)

// StatusSource reports the chain height for the status endpoint.
type StatusSource interface {
	BlockHeight(ctx context.Context) string
}

// Availability reports which capabilities run in live mode, for the status
// endpoint. A false value means the degraded variant is wired.
type Availability struct {
	Market bool `json:"market"`
	LLM    bool `json:"llm"`
	Voice  bool `json:"voice"`
}

// Handler serves the Neo Nomad API.
type Handler struct {
	orchestrator *negotiation.Orchestrator
	settler      domain.Settler
	narrator     domain.Narrator
	status       StatusSource
	sessions     *session.Store
	available    Availability
	logger       *slog.Logger
}

// NewHandler wires the API surface over the core components.
func NewHandler(
	orchestrator *negotiation.Orchestrator,
	settler domain.Settler,
	narrator domain.Narrator,
	status StatusSource,
	sessions *session.Store,
	available Availability,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		settler:      settler,
		narrator:     narrator,
		status:       status,
		sessions:     sessions,
		available:    available,
		logger:       logger,
	}
}

// Routes registers the API endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/countries", h.handleCountries)
	r.Get("/api/status", h.handleStatus)
	r.Get("/api/analysis", h.handleLastAnalysis)
	r.Get("/api/journey", h.handleJourney)
	r.Post("/api/analyze", h.handleAnalyze)
	r.Post("/api/settle", h.handleSettle)
	r.Post("/api/narrate", h.handleNarrate)
}

func (h *Handler) state(r *http.Request) *session.State {
	return h.sessions.Get(server.GetSessionID(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) handleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"countries": country.All()})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"block_height": h.status.BlockHeight(r.Context()),
		"components":   h.available,
	})
}

type analyzeRequest struct {
	Country  string  `json:"country"`
	Item     string  `json:"item"`
	AskPrice float64 `json:"ask_price"`
}

type analyzeResponse struct {
	Result  domain.NegotiationResult `json:"result"`
	Country string                   `json:"country"`
	Error   string                   `json:"error,omitempty"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Item) == "" {
		writeError(w, http.StatusBadRequest, "item must not be empty")
		return
	}
	if req.AskPrice <= 0 {
		writeError(w, http.StatusBadRequest, "ask_price must be positive")
		return
	}
	ctx, err := country.Lookup(req.Country)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.AddLogField(r.Context(), "item", req.Item)
	server.AddLogField(r.Context(), "country", ctx.Name)

	resp := analyzeResponse{Country: ctx.Name}
	result, err := h.orchestrator.Analyze(r.Context(), req.Item, req.AskPrice, ctx)
	if err != nil {
		// The orchestrator's contract: failures become a displayed message
		// and an empty result, never a fault.
		server.AddError(r.Context(), err)
		resp.Error = err.Error()
	}
	resp.Result = result

	h.state(r).SetAnalysis(result, ctx)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLastAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ctx := h.state(r).Analysis()
	writeJSON(w, http.StatusOK, analyzeResponse{Result: result, Country: ctx.Name})
}

type settleRequest struct {
	Country       string  `json:"country"`
	Item          string  `json:"item"`
	AskPrice      float64 `json:"ask_price"`
	SellerAddress string  `json:"seller_address"`
}

func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Item) == "" {
		writeError(w, http.StatusBadRequest, "item must not be empty")
		return
	}
	ctx, err := country.Lookup(req.Country)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.settler.Settle(r.Context(), req.SellerAddress)
	if res.Success {
		h.state(r).RecordPurchase(req.Item, ctx.Name, req.AskPrice, ctx.Currency)
		h.logger.Info("purchase recorded",
			slog.String("item", req.Item),
			slog.String("location", ctx.Name),
			slog.Int64("block", res.Block),
		)
	} else {
		server.AddLogField(r.Context(), "settlement_error", res.Error)
	}
	writeJSON(w, http.StatusOK, res)
}

type narrateRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (h *Handler) handleNarrate(w http.ResponseWriter, r *http.Request) {
	var req narrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	}

	audio, err := h.narrator.Speak(r.Context(), req.Text, req.Voice)
	if err != nil {
		server.AddError(r.Context(), err)
		writeError(w, http.StatusBadGateway, "Voice Error: "+err.Error())
		return
	}
	if audio == nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"warning": "Speech synthesis API key not set.",
		})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (h *Handler) handleJourney(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state(r).Journey())
}
