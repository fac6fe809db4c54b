package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kava-labs/liquidation-queue/keeper"
	"github.com/kava-labs/liquidation-queue/metrics"
	"github.com/kava-labs/liquidation-queue/types"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the keeper over HTTP. Queries run concurrently, a config
// update waits for them and runs alone.
type Server struct {
	mu      sync.RWMutex
	keeper  keeper.Keeper
	cdc     *codec.LegacyAmino
	metrics *metrics.Metrics
	logger  zerolog.Logger
	checks  []health.Check
}

// NewServer returns a server for k. checks run periodically and are
// reported on /health next to the ledger check.
func NewServer(k keeper.Keeper, m *metrics.Metrics, logger zerolog.Logger, checks ...health.Check) *Server {
	return &Server{
		keeper:  k,
		cdc:     types.ModuleCdc,
		metrics: m,
		logger:  logger,
		checks:  checks,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/config", s.read(s.queryConfig))
	r.Post("/liquidation_amount", s.read(s.queryLiquidationAmount))
	r.Get("/bids", s.read(s.queryBidsByUser))
	r.Get("/bids/{idx}", s.read(s.queryBid))
	r.Get("/bid_pools/{collateral_token}", s.read(s.queryBidPools))
	r.Get("/bid_pools/{collateral_token}/{slot}", s.read(s.queryBidPool))
	r.Get("/collaterals/{collateral_token}", s.read(s.queryCollateralInfo))
	r.Post("/update_config", s.write(s.updateConfig))

	r.Get("/health", s.healthHandler())
	r.Handle("/metrics", s.metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "page not found"})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("failed to shut down query server")
		}
	}()

	s.logger.
		Info().
		Msgf("query server listening on %s", server.Addr)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) read(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		next(w, r)
	}
}

func (s *Server) write(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next(w, r)
	}
}

// instrument records latency and status of every request
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)
		s.metrics.QueryRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		s.metrics.QueryDuration.WithLabelValues(route).Observe(duration.Seconds())

		s.logger.
			Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Msg("served request")
	})
}

func (s *Server) healthHandler() http.HandlerFunc {
	options := []health.CheckerOption{
		health.WithCacheDuration(1 * time.Second),
		health.WithTimeout(10 * time.Second),
		health.WithCheck(health.Check{
			Name: "ledger",
			Check: func(ctx context.Context) error {
				s.mu.RLock()
				defer s.mu.RUnlock()
				return s.keeper.Ping()
			},
		}),
		// Runs when health status changes
		health.WithStatusListener(func(ctx context.Context, state health.CheckerState) {
			s.logger.
				Debug().
				Str("status", string(state.Status)).
				Msg("health status changed")
		}),
	}
	for _, check := range s.checks {
		// Run every minute with initial delay of 3 seconds. Not run each HTTP request
		options = append(options, health.WithPeriodicCheck(60*time.Second, 3*time.Second, check))
	}

	return health.NewHandler(health.NewChecker(options...))
}
