package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"quotes-aggregator/internal/domain"
	"quotes-aggregator/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// QuotesReader is the read side consumed by the handlers.
type QuotesReader interface {
	Latest(ctx context.Context) ([]domain.RateSample, error)
	Average(ctx context.Context) (domain.Average, error)
	Slippage(ctx context.Context) ([]domain.Slippage, error)
	Ping(ctx context.Context) error
}

// RequestObserver records per-route request metrics.
type RequestObserver interface {
	ObserveRequest(route string, status int, seconds float64)
}

type Server struct {
	svc      QuotesReader
	observer RequestObserver
	metrics  http.Handler
}

type Option func(*Server)

func WithRequestObserver(o RequestObserver) Option { return func(s *Server) { s.observer = o } }

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

func NewServer(svc QuotesReader, opts ...Option) *Server {
	s := &Server{svc: svc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type quoteDTO struct {
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Source    string  `json:"source"`
}

type averageDTO struct {
	AverageBuyPrice  float64 `json:"average_buy_price"`
	AverageSellPrice float64 `json:"average_sell_price"`
}

type slippageDTO struct {
	BuyPriceSlippage  float64 `json:"buy_price_slippage"`
	SellPriceSlippage float64 `json:"sell_price_slippage"`
	Source            string  `json:"source"`
}

type errorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) GetQuotes(w http.ResponseWriter, r *http.Request) {
	latest, err := s.svc.Latest(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	out := make([]quoteDTO, 0, len(latest))
	for _, q := range latest {
		out = append(out, quoteDTO{BuyPrice: q.Buy, SellPrice: q.Sell, Source: q.Source})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetAverage(w http.ResponseWriter, r *http.Request) {
	avg, err := s.svc.Average(r.Context())
	if errors.Is(err, domain.ErrNoSamples) {
		writeError(w, http.StatusServiceUnavailable, "no quotes collected yet")
		return
	}
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, averageDTO{AverageBuyPrice: avg.Buy, AverageSellPrice: avg.Sell})
}

func (s *Server) GetSlippage(w http.ResponseWriter, r *http.Request) {
	slips, err := s.svc.Slippage(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	out := make([]slippageDTO, 0, len(slips))
	for _, sl := range slips {
		out = append(out, slippageDTO{BuyPriceSlippage: sl.Buy, SellPriceSlippage: sl.Sell, Source: sl.Source})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorDTO{Code: status, Message: msg})
}

// storeError reports a failed read with the error text as the body.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	logx.WithFields(r.Context()).Error("http.read_failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
