package pg

import (
	"context"

	"quotes-aggregator/internal/application"
	"quotes-aggregator/internal/domain"
	"quotes-aggregator/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// RateRepo stores samples in the append-only rates table. The BIGSERIAL id
// is the sample sequence.
type RateRepo struct{ db *DB }

var _ application.RateStore = (*RateRepo)(nil)
var _ application.Pinger = (*RateRepo)(nil)

func NewRateRepo(db *DB) *RateRepo { return &RateRepo{db: db} }

func (r *RateRepo) Append(ctx context.Context, s domain.RateSample) (domain.RateSample, error) {
	const ins = `
        INSERT INTO rates(buy_price, sell_price, source)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	log := logx.L().With(
		zap.String("repo", "rates"),
		zap.String("operation", "Append"),
		zap.String("source", s.Source),
	)
	log.Debug("sql.exec_start")
	if err := r.db.Pool.QueryRow(ctx, ins, s.Buy, s.Sell, s.Source).Scan(&s.Seq, &s.CreatedAt); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return domain.RateSample{}, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	log.Debug("sql.exec_success", zap.Int64("id", s.Seq))
	return s, nil
}

func (r *RateRepo) LatestPerSource(ctx context.Context) ([]domain.RateSample, error) {
	const q = `
        SELECT id, buy_price, sell_price, source, created_at
        FROM rates
        WHERE id IN (SELECT MAX(id) FROM rates GROUP BY source)
        ORDER BY id`
	log := logx.L().With(zap.String("repo", "rates"), zap.String("operation", "LatestPerSource"))
	log.Debug("sql.query_start")
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RateSample, 0, 8)
	for rows.Next() {
		var s domain.RateSample
		if err := rows.Scan(&s.Seq, &s.Buy, &s.Sell, &s.Source, &s.CreatedAt); err != nil {
			log.Error("sql.scan_failed", zap.Error(err))
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		log.Error("sql.rows_failed", zap.Error(err))
		return nil, err
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (r *RateRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
