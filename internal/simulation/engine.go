package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"golang.org/x/sync/errgroup"
)

// DefaultPaths is the number of simulated trajectories per projection.
const DefaultPaths = 1000

// Engine projects portfolio values with a Monte Carlo simulation of monthly
// returns. It holds no state between calls; the seed source is the only
// shared resource and is guarded by mu.
type Engine struct {
	paths int

	mu   sync.Mutex
	seed *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithPaths overrides the number of simulated trajectories.
func WithPaths(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.paths = n
		}
	}
}

// WithSeed makes projections reproducible for testing.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = rand.New(rand.NewSource(seed))
	}
}

// NewEngine creates an engine with a time-seeded random source.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		paths: DefaultPaths,
		seed:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Paths returns the configured trajectory count.
func (e *Engine) Paths() int {
	return e.paths
}

// Project validates the input, simulates e.paths independent trajectories of
// monthly portfolio values and aggregates them into per-month percentile
// bands. One record is produced per month from 0 to horizon_years*12
// inclusive.
func (e *Engine) Project(input models.ProjectionInput) (*models.ProjectionResult, error) {
	if input.HorizonYears <= 0 {
		return nil, fmt.Errorf("%w: horizon_years must be positive, got %d",
			ErrInvalidParameter, input.HorizonYears)
	}
	if input.InitialAmount < 0 {
		return nil, fmt.Errorf("%w: initial_amount must not be negative, got %.2f",
			ErrInvalidParameter, input.InitialAmount)
	}
	if input.MonthlyContribution < 0 {
		return nil, fmt.Errorf("%w: monthly_contribution must not be negative, got %.2f",
			ErrInvalidParameter, input.MonthlyContribution)
	}

	profile, err := ResolveRiskProfile(input.RiskLevel)
	if err != nil {
		return nil, err
	}

	mean, sigma := monthlyParams(profile)
	months := input.HorizonYears * 12

	paths := e.simulate(input.InitialAmount, input.MonthlyContribution, months, mean, sigma)

	// Contributions are deterministic and identical across trajectories, so
	// the cumulative series is computed once rather than per path.
	cumulative := make([]float64, months+1)
	cumulative[0] = input.InitialAmount
	for m := 1; m <= months; m++ {
		cumulative[m] = cumulative[m-1] + input.MonthlyContribution
	}

	records := aggregate(paths, cumulative)

	final := records[len(records)-1]
	return &models.ProjectionResult{
		RiskLevel:   profile.Level,
		RiskLabel:   profile.Label,
		Records:     records,
		Simulations: e.paths,
		Summary: models.ProjectionSummary{
			FinalMedian:     final.Median,
			TotalInvestment: final.CumulativeContribution,
			TotalReturn:     final.Median - final.CumulativeContribution,
		},
	}, nil
}

// monthlyParams converts annualized profile parameters to monthly ones. The
// return conversion is compounding-consistent; volatility scales with the
// square root of time.
func monthlyParams(p RiskProfile) (mean, sigma float64) {
	mean = math.Pow(1+p.MeanReturn, 1.0/12.0) - 1
	sigma = p.Volatility / math.Sqrt(12)
	return mean, sigma
}

// simulate produces the path ensemble. Trajectories are independent, so they
// run on parallel workers; each path gets its own child generator seeded
// up front from the engine source, which keeps a seeded engine reproducible
// no matter how the goroutines are scheduled.
func (e *Engine) simulate(initial, contribution float64, months int, mean, sigma float64) [][]float64 {
	seeds := make([]int64, e.paths)
	e.mu.Lock()
	for i := range seeds {
		seeds[i] = e.seed.Int63()
	}
	e.mu.Unlock()

	paths := make([][]float64, e.paths)
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < e.paths; i++ {
		i := i
		g.Go(func() error {
			paths[i] = simulatePath(rand.New(rand.NewSource(seeds[i])),
				initial, contribution, months, mean, sigma)
			return nil
		})
	}
	_ = g.Wait()
	return paths
}

// simulatePath walks one trajectory: a geometric random walk with the monthly
// contribution added after growth each period.
func simulatePath(rng *rand.Rand, initial, contribution float64, months int, mean, sigma float64) []float64 {
	values := make([]float64, months+1)
	values[0] = initial
	for m := 1; m <= months; m++ {
		r := rng.NormFloat64()*sigma + mean
		values[m] = values[m-1]*(1+r) + contribution
	}
	return values
}

// aggregate reduces the ensemble to per-month 10th/50th/90th percentile bands.
func aggregate(paths [][]float64, cumulative []float64) []models.ProjectionRecord {
	months := len(cumulative) - 1
	records := make([]models.ProjectionRecord, months+1)
	column := make([]float64, len(paths))
	for m := 0; m <= months; m++ {
		for i, path := range paths {
			column[i] = path[m]
		}
		sort.Float64s(column)
		records[m] = models.ProjectionRecord{
			Month:                  m,
			Year:                   float64(m) / 12,
			Median:                 percentile(column, 50),
			LowerP10:               percentile(column, 10),
			UpperP90:               percentile(column, 90),
			CumulativeContribution: cumulative[m],
		}
	}
	return records
}
