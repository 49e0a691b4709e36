// Package handlers exposes the valuation over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openquant/capgain/internal/logger"
	"github.com/openquant/capgain/internal/lognormal"
	"github.com/openquant/capgain/internal/pricer"
	"github.com/openquant/capgain/internal/quadrature"
)

// ValueRequest carries the six scalar inputs of a valuation.
type ValueRequest struct {
	Spot    float64 `json:"spot"`
	Alpha   float64 `json:"alpha"`
	Cap     float64 `json:"cap"`
	Rate    float64 `json:"rate"`
	Vol     float64 `json:"vol"`
	Horizon float64 `json:"horizon"`
}

// ValueResponse is the valuation result. Warning is set when the quadrature
// tolerance was not reached; Value is then the best available estimate.
type ValueResponse struct {
	Value    float64 `json:"value"`
	AbsError float64 `json:"abs_error"`
	Warning  string  `json:"warning,omitempty"`
}

// ValueHandler prices valuation requests with a fixed quadrature setup.
type ValueHandler struct {
	Quadrature quadrature.Options
}

// NewRouter wires the HTTP routes.
func NewRouter(opt quadrature.Options) *mux.Router {
	h := &ValueHandler{Quadrature: opt}
	r := mux.NewRouter()
	r.HandleFunc("/value", h.Value).Methods(http.MethodPost)
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	return r
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Value prices one capped-gain scenario. Invalid parameters are a 400;
// a tolerance failure still answers 200 with the best estimate and a
// warning, leaving the precision decision to the client.
func (h *ValueHandler) Value(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	dist := lognormal.TerminalDist{Spot: req.Spot, Rate: req.Rate, Vol: req.Vol, Horizon: req.Horizon}
	pay := pricer.CappedGain{Alpha: req.Alpha, Cap: req.Cap}

	val, err := pricer.ExpectedPayoff(dist, pay, h.Quadrature)
	if err != nil {
		if errors.Is(err, lognormal.ErrInvalidParameter) {
			logger.Errorf("rejected valuation request: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Errorf("valuation tolerance not reached: %v", err)
		writeJSON(w, ValueResponse{Value: val.Value, AbsError: val.AbsError, Warning: err.Error()})
		return
	}

	logger.Debugf("valued spot=%g cap=%g vol=%g -> %.10g (err bound %.2g)",
		req.Spot, req.Cap, req.Vol, val.Value, val.AbsError)
	writeJSON(w, ValueResponse{Value: val.Value, AbsError: val.AbsError})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
