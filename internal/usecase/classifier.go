package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jpvales/homerate-api/internal/entity"
)

// Bucket thresholds, inclusive upper bounds. A user rate up to 0.25pp above
// the benchmark is still a great deal; up to 1.0pp above is fair.
var (
	greatMaxDelta = decimal.NewFromFloat(0.25)
	fairMaxDelta  = decimal.NewFromInt(1)
)

// ClassifyDeal grades the user's stated rate against the historical benchmark
// for the same term and start month. Pure and total: any pair of rates maps
// to exactly one bucket.
func ClassifyDeal(userRate, historicalRate decimal.Decimal) entity.DealResult {
	delta := userRate.Sub(historicalRate)

	switch {
	case delta.Cmp(greatMaxDelta) <= 0:
		return entity.ResultGreat
	case delta.Cmp(fairMaxDelta) <= 0:
		return entity.ResultFair
	default:
		return entity.ResultPoor
	}
}
