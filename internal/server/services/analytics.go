package services

import (
	"math"
	"math/rand/v2"

	"github.com/legalchicks/lcen-portal/internal/server/models"
)

// RandSource is satisfied by *rand.Rand.
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

var forecastDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	minYield      = 110
	maxYield      = 135
	minEfficiency = 80.0
	maxEfficiency = 95.0

	mortalityLevel  = "Low"
	mortalityReason = "Flock health metrics are stable. Weather conditions are optimal. No immediate concerns detected."
)

type AnalyticsService struct {
	rnd RandSource
}

// NewAnalyticsService uses rnd, or the global generator when rnd is nil.
func NewAnalyticsService(rnd RandSource) *AnalyticsService {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &AnalyticsService{rnd: rnd}
}

// Snapshot builds a week's egg yield forecast with feed efficiency and risk.
func (s *AnalyticsService) Snapshot() models.Analytics {
	forecast := make([]models.EggForecast, 0, len(forecastDays))
	for _, d := range forecastDays {
		forecast = append(forecast, models.EggForecast{
			Day:            d,
			PredictedYield: minYield + s.rnd.IntN(maxYield-minYield+1),
		})
	}

	eff := minEfficiency + s.rnd.Float64()*(maxEfficiency-minEfficiency)

	return models.Analytics{
		EggYieldForecast:    forecast,
		FeedEfficiencyScore: math.Round(eff*100) / 100,
		MortalityRisk:       models.MortalityRisk{Level: mortalityLevel, Reason: mortalityReason},
	}
}
