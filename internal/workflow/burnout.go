package workflow

import "math"

// BurnoutDetail breaks the burnout score into its weighted components so a
// reviewer can see which strain dominates before comparing interventions.
type BurnoutDetail struct {
	TotalRisk  float64            `json:"total_risk"`
	Category   RiskLevel          `json:"category"`
	Components map[string]float64 `json:"components"`
	Weights    map[string]float64 `json:"weights"`
}

// BurnoutBreakdown computes the burnout score together with its capped
// component factors. The total matches Outputs.BurnoutScore for the same
// snapshot and calibration.
func BurnoutBreakdown(in Inputs, cal Calibration) (BurnoutDetail, error) {
	if err := cal.Validate(); err != nil {
		return BurnoutDetail{}, err
	}
	if err := in.Validate(); err != nil {
		return BurnoutDetail{}, err
	}

	load := interruptionLoad(in, cal)
	utilization := shiftUtilization(in, cal, timeImpact(in, cal, load))
	b := cal.Burnout

	components := map[string]float64{
		"interruptions":   math.Min(1, load.PerProviderPerHour*b.PerInterruptionHour),
		"workload":        math.Min(1, utilization*b.PerWorkloadUnit),
		"critical_events": math.Min(1, in.CriticalEventsPerWeek/7*b.PerCriticalEventDay),
		"baseline":        b.Baseline,
	}
	weights := map[string]float64{
		"interruptions":   b.InterruptionWeight,
		"workload":        b.WorkloadWeight,
		"critical_events": b.CriticalWeight,
		"baseline":        1,
	}

	total := burnoutScore(in, cal, load, utilization)

	return BurnoutDetail{
		TotalRisk:  total,
		Category:   ClassifyRisk(total, cal.BurnoutThresholds),
		Components: components,
		Weights:    weights,
	}, nil
}
