package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rickgao/spacexy-tracker/internal/api"
	"github.com/rickgao/spacexy-tracker/internal/calc"
	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/version"
	"github.com/rickgao/spacexy-tracker/internal/zone"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string                `json:"status"`
	Version string                `json:"version"`
	Rounds  model.ConnectionState `json:"rounds"`
	Stats   model.ConnectionState `json:"stats"`
}

// FeedResponse is the body of GET /api/feed.
type FeedResponse struct {
	Rounds     []model.AnnotatedRound `json:"rounds"`
	Connection model.ConnectionState  `json:"connection"`
	Zones      []model.Zone           `json:"zones"`
}

// CashoutResponse is the body of GET /api/cashout.
type CashoutResponse struct {
	RTP             float64               `json:"rtp"`
	Theoretical     []model.CashoutTarget `json:"theoretical"`
	Observed        []model.CashoutTarget `json:"observed"`
	Window          model.WindowStats     `json:"window"`
	QuickCrashAlert model.QuickCrashAlert `json:"quick_crash_alert"`
}

// handleHealth reports the tracker as degraded while the rounds feed is
// disconnected. It always answers 200 so the process stays routable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: version.Version,
	}
	if s.deps.Rounds != nil {
		resp.Rounds = s.deps.Rounds.Snapshot().Connection
		if !resp.Rounds.Connected {
			resp.Status = "degraded"
		}
	}
	if s.deps.Stats != nil {
		resp.Stats = s.deps.Stats.Snapshot().Connection
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	snap := s.deps.Rounds.Snapshot()

	respondJSON(w, http.StatusOK, FeedResponse{
		Rounds:     zone.Annotate(snap.Rounds, s.cfg.Zones),
		Connection: snap.Connection,
		Zones:      s.cfg.Zones,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Stats.Snapshot())
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	in, fields := parseCalculatorInputs(r)
	if fields == nil {
		fields = s.validator.ValidateInputs(in)
	}
	if fields != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid request. Please check your inputs.",
			Fields: fields,
		})
		return
	}

	respondJSON(w, http.StatusOK, s.deps.Calculator.Quote(in))
}

// parseCalculatorInputs reads bet, target and trials from the query. Trials
// defaults to 1.
func parseCalculatorInputs(r *http.Request) (model.CalculatorInputs, map[string]string) {
	q := r.URL.Query()
	in := model.CalculatorInputs{Trials: 1}
	fields := make(map[string]string)

	if v := q.Get("bet"); v == "" {
		fields["bet"] = "This field is required"
	} else if f, err := strconv.ParseFloat(v, 64); err != nil {
		fields["bet"] = "Must be a number"
	} else {
		in.BetAmount = f
	}

	if v := q.Get("target"); v == "" {
		fields["target"] = "This field is required"
	} else if f, err := strconv.ParseFloat(v, 64); err != nil {
		fields["target"] = "Must be a number"
	} else {
		in.TargetMultiplier = f
	}

	if v := q.Get("trials"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["trials"] = "Must be an integer"
		} else {
			in.Trials = n
		}
	}

	if len(fields) == 0 {
		return in, nil
	}
	return in, fields
}

func (s *Server) handleCashout(w http.ResponseWriter, r *http.Request) {
	multipliers := calc.Multipliers(s.deps.Rounds.Snapshot().Rounds)

	respondJSON(w, http.StatusOK, CashoutResponse{
		RTP:             s.deps.Calculator.RTP(),
		Theoretical:     s.deps.Calculator.CashoutTable(nil),
		Observed:        calc.EmpiricalCashout(multipliers, nil),
		Window:          calc.Summarize(multipliers),
		QuickCrashAlert: calc.QuickCrashAlert(multipliers),
	})
}

func (s *Server) handleCrash(w http.ResponseWriter, r *http.Request) {
	period := model.Period(chi.URLParam(r, "period"))
	if period == "" {
		period = s.cfg.DefaultPeriod
	}
	if !period.Valid() {
		respondError(w, http.StatusBadRequest, "period must be one of 1h, 6h, 24h, 7d, 30d")
		return
	}
	if s.deps.Crash == nil {
		respondError(w, http.StatusServiceUnavailable, "crash statistics unavailable")
		return
	}

	stats, err := s.deps.Crash.GetCrashStats(r.Context(), s.cfg.Game.ID, period)
	if err != nil {
		s.logger.Warn("failed to fetch crash stats", "period", period, "err", err)

		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			respondError(w, http.StatusNotFound, "no crash statistics for this game")
			return
		}
		respondError(w, http.StatusBadGateway, "upstream API unavailable")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
