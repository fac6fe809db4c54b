package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/go-chi/chi/v5"

	"github.com/kava-labs/liquidation-queue/types"
)

const (
	RestCollateralToken = "collateral_token"
	RestBidder          = "bidder"
	RestStartAfter      = "start_after"
	RestLimit           = "limit"
	RestIdx             = "idx"
	RestSlot            = "slot"

	maxBodyBytes = 1 << 20
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) queryConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.keeper.QueryConfig()
	s.respond(w, r, resp, err)
}

func (s *Server) queryLiquidationAmount(w http.ResponseWriter, r *http.Request) {
	var params types.QueryLiquidationAmountParams
	if err := s.decodeBody(r, &params); err != nil {
		s.respond(w, r, nil, err)
		return
	}

	resp, plan, err := s.keeper.QueryLiquidationAmount(r.Context(), params)
	if err == nil {
		s.metrics.PlanOutcomes.WithLabelValues(string(plan.Outcome)).Inc()
	}
	s.respond(w, r, resp, err)
}

func (s *Server) queryBid(w http.ResponseWriter, r *http.Request) {
	idx, err := parseUint(chi.URLParam(r, RestIdx), 64)
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}

	resp, err := s.keeper.QueryBid(types.QueryBidParams{BidIdx: idx})
	s.respond(w, r, resp, err)
}

func (s *Server) queryBidsByUser(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := types.QueryBidsByUserParams{
		CollateralToken: query.Get(RestCollateralToken),
		Bidder:          query.Get(RestBidder),
	}

	if v := query.Get(RestStartAfter); v != "" {
		startAfter, err := parseUint(v, 64)
		if err != nil {
			s.respond(w, r, nil, err)
			return
		}
		params.StartAfter = &startAfter
	}
	limit, err := parseLimit(query.Get(RestLimit))
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	params.Limit = limit

	resp, err := s.keeper.QueryBidsByUser(params)
	s.respond(w, r, resp, err)
}

func (s *Server) queryBidPool(w http.ResponseWriter, r *http.Request) {
	slot, err := parseUint(chi.URLParam(r, RestSlot), 8)
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}

	resp, err := s.keeper.QueryBidPool(types.QueryBidPoolParams{
		CollateralToken: chi.URLParam(r, RestCollateralToken),
		BidSlot:         uint8(slot),
	})
	s.respond(w, r, resp, err)
}

func (s *Server) queryBidPools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := types.QueryBidPoolsParams{
		CollateralToken: chi.URLParam(r, RestCollateralToken),
	}

	if v := query.Get(RestStartAfter); v != "" {
		startAfter, err := parseUint(v, 8)
		if err != nil {
			s.respond(w, r, nil, err)
			return
		}
		slot := uint8(startAfter)
		params.StartAfter = &slot
	}
	limit, err := parseLimit(query.Get(RestLimit))
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	params.Limit = limit

	resp, err := s.keeper.QueryBidPools(params)
	s.respond(w, r, resp, err)
}

func (s *Server) queryCollateralInfo(w http.ResponseWriter, r *http.Request) {
	resp, err := s.keeper.QueryCollateralInfo(types.QueryCollateralInfoParams{
		CollateralToken: chi.URLParam(r, RestCollateralToken),
	})
	s.respond(w, r, resp, err)
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	var msg types.MsgUpdateConfig
	if err := s.decodeBody(r, &msg); err != nil {
		s.respond(w, r, nil, err)
		return
	}

	resp, err := s.keeper.UpdateConfig(msg)
	if err != nil {
		s.metrics.ConfigUpdates.WithLabelValues("rejected").Inc()
	} else {
		s.metrics.ConfigUpdates.WithLabelValues("applied").Inc()
	}
	s.respond(w, r, resp, err)
}

func (s *Server) decodeBody(r *http.Request, ptr interface{}) error {
	bz, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidInput, "failed to read body: %s", err)
	}
	if err := s.cdc.UnmarshalJSON(bz, ptr); err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidInput, "failed to decode body: %s", err)
	}
	return nil
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, resp interface{}, err error) {
	if err != nil {
		code := StatusCode(err)
		if code == http.StatusInternalServerError {
			s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		}
		s.writeJSON(w, code, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	bz, err := s.cdc.MarshalJSON(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
		code = http.StatusInternalServerError
		bz = []byte(`{"error": "failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(bz); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write response")
	}
}

// StatusCode maps ledger errors to HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrInvalidInput), errors.Is(err, types.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrArithmeticDomain):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseUint(s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, sdkerrors.Wrapf(types.ErrInvalidInput, "%q is not a valid %d bit unsigned integer", s, bitSize)
	}
	return v, nil
}

func parseLimit(s string) (uint8, error) {
	if s == "" {
		return 0, nil
	}
	v, err := parseUint(s, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
