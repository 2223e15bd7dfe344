package forecast

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"icuflow-mcp/internal/workflow"
)

// Config bounds a projection run. Zero values fall back to defaults.
type Config struct {
	// Days ahead to project (default 7).
	Days int `json:"days"`
	// Trials per projected day (default 500).
	Trials int `json:"trials"`
	// Volatility is the relative spread of the daily input perturbation.
	// Zero volatility reproduces the deterministic evaluation in every
	// band.
	Volatility float64 `json:"volatility"`
	// Workers caps the parallel trial goroutines (default 4).
	Workers int `json:"workers"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

func (c Config) withDefaults() Config {
	if c.Days <= 0 {
		c.Days = 7
	}
	if c.Trials <= 0 {
		c.Trials = 500
	}
	if c.Volatility < 0 {
		c.Volatility = 0
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Band holds the trial percentiles for one metric on one day.
type Band struct {
	P50 float64 `json:"p50"`
	P85 float64 `json:"p85"`
	P95 float64 `json:"p95"`
}

// DayProjection is the percentile cone for one day ahead.
type DayProjection struct {
	Day           int  `json:"day"`
	Workload      Band `json:"workload"`
	Burnout       Band `json:"burnout"`
	CognitiveLoad Band `json:"cognitive_load"`
}

// Engine projects workload trends by re-evaluating perturbed copies of an
// input snapshot. Staffing stays fixed across trials; the perturbation
// models demand variability, not roster changes.
type Engine struct {
	cal workflow.Calibration
	cfg Config
}

// NewEngine binds a calibration and a (default-filled) config.
func NewEngine(cal workflow.Calibration, cfg Config) *Engine {
	return &Engine{cal: cal, cfg: cfg.withDefaults()}
}

// Project runs the Monte Carlo cone for each day of the horizon. The cone
// widens with the horizon: day d samples with spread volatility*sqrt(d).
// Each trial owns its data and its seeded random source, so a fixed seed
// makes the projection reproducible regardless of scheduling.
func (e *Engine) Project(in workflow.Inputs) ([]DayProjection, error) {
	// Validate once up front so trial errors can only be programming bugs.
	if _, err := workflow.Evaluate(in, e.cal); err != nil {
		return nil, err
	}

	projections := make([]DayProjection, 0, e.cfg.Days)

	for day := 1; day <= e.cfg.Days; day++ {
		sigma := e.cfg.Volatility * math.Sqrt(float64(day))

		workloads := make([]float64, e.cfg.Trials)
		burnouts := make([]float64, e.cfg.Trials)
		cognitive := make([]float64, e.cfg.Trials)

		var g errgroup.Group
		chunk := (e.cfg.Trials + e.cfg.Workers - 1) / e.cfg.Workers
		for start := 0; start < e.cfg.Trials; start += chunk {
			end := start + chunk
			if end > e.cfg.Trials {
				end = e.cfg.Trials
			}
			g.Go(func() error {
				for trial := start; trial < end; trial++ {
					rng := rand.New(rand.NewSource(e.cfg.Seed + int64(day)<<32 + int64(trial)))
					sample := perturb(in, rng, sigma)
					out, err := workflow.Evaluate(sample, e.cal)
					if err != nil {
						return err
					}
					workloads[trial] = out.WorkloadScore
					burnouts[trial] = out.BurnoutScore
					cognitive[trial] = out.CognitiveLoad
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		projections = append(projections, DayProjection{
			Day:           day,
			Workload:      bandOf(workloads),
			Burnout:       bandOf(burnouts),
			CognitiveLoad: bandOf(cognitive),
		})
	}

	return projections, nil
}

// perturb jitters the demand-side inputs by a relative factor, clamping at
// zero so a sample can never turn non-physical.
func perturb(in workflow.Inputs, rng *rand.Rand, sigma float64) workflow.Inputs {
	out := in
	out.NursingQuestionsPerHour = jitter(in.NursingQuestionsPerHour, rng, sigma)
	out.ExamCallbacksPerHour = jitter(in.ExamCallbacksPerHour, rng, sigma)
	out.PeerInterruptsPerHour = jitter(in.PeerInterruptsPerHour, rng, sigma)
	out.CriticalEventsPerWeek = jitter(in.CriticalEventsPerWeek, rng, sigma)
	out.AdmissionsPerShift = jitterCount(in.AdmissionsPerShift, rng, sigma)
	out.ConsultsPerShift = jitterCount(in.ConsultsPerShift, rng, sigma)
	out.TransfersPerShift = jitterCount(in.TransfersPerShift, rng, sigma)
	return out
}

func jitter(v float64, rng *rand.Rand, sigma float64) float64 {
	return math.Max(0, v*(1+rng.NormFloat64()*sigma))
}

func jitterCount(v int, rng *rand.Rand, sigma float64) int {
	jittered := math.Round(float64(v) * (1 + rng.NormFloat64()*sigma))
	if jittered < 0 {
		return 0
	}
	return int(jittered)
}

func bandOf(values []float64) Band {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Band{
		P50: percentile(sorted, 0.50),
		P85: percentile(sorted, 0.85),
		P95: percentile(sorted, 0.95),
	}
}

func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
