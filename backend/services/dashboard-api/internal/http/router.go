package httpserver

import (
	"net/http"

	"chargeview/backend/services/dashboard-api/internal/http/handlers"
	"chargeview/backend/services/dashboard-api/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Chargers     *handlers.ChargersHandlers
	Evses        *handlers.EvseHandlers
	Ess          *handlers.EssHandlers
	SetVariables *handlers.SetVariablesHandlers
	Status       *handlers.StatusHandlers
	Auth         *handlers.AuthHandlers
	Health       http.HandlerFunc
	Metrics      http.Handler
	StationsWS   http.HandlerFunc
}

// NewRouter wires HTTP routes. Mutations sit behind the bearer middleware;
// everything else is open, matching the original deployment.
func NewRouter(deps RouterDeps, authMiddleware func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)

	mux.HandleFunc("GET /api/chargers", deps.Chargers.List)
	mux.HandleFunc("GET /api/chargers/{id}", deps.Chargers.Get)
	mux.HandleFunc("GET /api/chargers/{id}/details", deps.Chargers.Details)
	mux.HandleFunc("GET /api/chargers/{id}/evses", deps.Chargers.Evses)
	mux.HandleFunc("GET /api/chargers/{id}/meter-values", deps.Chargers.MeterValues)
	mux.HandleFunc("GET /api/chargers/{id}/ess", deps.Chargers.Ess)
	mux.HandleFunc("GET /api/stations/search", deps.Chargers.Search)
	mux.HandleFunc("GET /api/stations/online", deps.Chargers.Online)

	mux.HandleFunc("GET /api/evses/{id}", deps.Evses.Get)
	mux.HandleFunc("GET /api/evses/{id}/connectors", deps.Evses.Connectors)
	mux.HandleFunc("GET /api/evses/{id}/meter-values", deps.Evses.MeterValues)
	mux.HandleFunc("GET /api/connectors/{id}", deps.Evses.GetConnector)
	mux.HandleFunc("GET /api/connectors/{id}/meter-values", deps.Evses.ConnectorMeterValues)

	mux.HandleFunc("GET /api/ess", deps.Ess.List)
	mux.HandleFunc("GET /api/ess/{id}", deps.Ess.Get)

	mux.HandleFunc("GET /api/setvariables/create", deps.SetVariables.Create)

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, authMiddleware)
	}
	mux.Handle("PUT /api/chargers/{id}/status", authenticated(deps.Status.Station))
	mux.Handle("PUT /api/evses/{id}/status", authenticated(deps.Status.Evse))
	mux.Handle("PUT /api/ess/{id}/status", authenticated(deps.Status.Ess))

	if deps.StationsWS != nil {
		mux.HandleFunc("GET /ws/stations", deps.StationsWS)
	}

	return mux
}
