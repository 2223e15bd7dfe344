package workflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InterruptionMinutes holds handling durations per interruption type.
type InterruptionMinutes struct {
	NursingQuestion float64 `json:"nursing_question" yaml:"nursing_question"`
	ExamCallback    float64 `json:"exam_callback" yaml:"exam_callback"`
	PeerInterrupt   float64 `json:"peer_interrupt" yaml:"peer_interrupt"`
}

// AdmissionMinutes holds durations for patient-flow activities.
type AdmissionMinutes struct {
	Simple   float64 `json:"simple" yaml:"simple"`
	Complex  float64 `json:"complex" yaml:"complex"`
	Consult  float64 `json:"consult" yaml:"consult"`
	Transfer float64 `json:"transfer" yaml:"transfer"`
}

// WorkloadWeights are the explicit weights of the workload score. They are
// configuration, not implicit constants, so a score is reproducible from
// the calibration it was computed with.
type WorkloadWeights struct {
	Interruptions  float64 `json:"interruptions" yaml:"interruptions"`
	Admissions     float64 `json:"admissions" yaml:"admissions"`
	CriticalEvents float64 `json:"critical_events" yaml:"critical_events"`
}

// BurnoutFactors parameterize the cumulative burnout score for a shift.
type BurnoutFactors struct {
	// Risk contributed per interruption per hour per provider.
	PerInterruptionHour float64 `json:"per_interruption_hour" yaml:"per_interruption_hour"`
	// Risk contributed per unit of shift utilization.
	PerWorkloadUnit float64 `json:"per_workload_unit" yaml:"per_workload_unit"`
	// Risk contributed per critical event per day.
	PerCriticalEventDay float64 `json:"per_critical_event_day" yaml:"per_critical_event_day"`
	// Baseline stands in for structural inefficiency (rounds, handovers).
	Baseline float64 `json:"baseline" yaml:"baseline"`

	InterruptionWeight float64 `json:"interruption_weight" yaml:"interruption_weight"`
	WorkloadWeight     float64 `json:"workload_weight" yaml:"workload_weight"`
	CriticalWeight     float64 `json:"critical_weight" yaml:"critical_weight"`
}

// CognitiveScales parameterize the 0-100 cognitive load score.
type CognitiveScales struct {
	Base                 float64 `json:"base" yaml:"base"`
	PerInterruptionHour  float64 `json:"per_interruption_hour" yaml:"per_interruption_hour"`
	PerCriticalHour      float64 `json:"per_critical_hour" yaml:"per_critical_hour"`
	PerAdmissionHour     float64 `json:"per_admission_hour" yaml:"per_admission_hour"`
	PerUtilizationExcess float64 `json:"per_utilization_excess" yaml:"per_utilization_excess"`
}

// EfficiencyFactors parameterize the provider efficiency estimate.
type EfficiencyFactors struct {
	InterruptionImpact float64 `json:"interruption_impact" yaml:"interruption_impact"`
	WorkloadImpact     float64 `json:"workload_impact" yaml:"workload_impact"`
	// RoundingImpact is the fixed efficiency loss of morning rounds.
	RoundingImpact float64 `json:"rounding_impact" yaml:"rounding_impact"`
	Floor          float64 `json:"floor" yaml:"floor"`
}

// Thresholds split a bounded score into low/medium/high.
type Thresholds struct {
	Medium float64 `json:"medium" yaml:"medium"`
	High   float64 `json:"high" yaml:"high"`
}

// Calibration is the full set of tunable constants behind an evaluation.
// Everything the formulas need is here so that two parties holding the
// same calibration reproduce identical outputs.
type Calibration struct {
	ShiftHours float64 `json:"shift_hours" yaml:"shift_hours"`

	Interruption InterruptionMinutes `json:"interruption_minutes" yaml:"interruption_minutes"`
	Admission    AdmissionMinutes    `json:"admission_minutes" yaml:"admission_minutes"`
	// ComplexShare is the fraction of admissions assumed complex.
	ComplexShare         float64 `json:"complex_share" yaml:"complex_share"`
	CriticalEventMinutes float64 `json:"critical_event_minutes" yaml:"critical_event_minutes"`

	Workload   WorkloadWeights   `json:"workload_weights" yaml:"workload_weights"`
	Burnout    BurnoutFactors    `json:"burnout_factors" yaml:"burnout_factors"`
	Cognitive  CognitiveScales   `json:"cognitive_scales" yaml:"cognitive_scales"`
	Efficiency EfficiencyFactors `json:"efficiency_factors" yaml:"efficiency_factors"`

	BottleneckThresholds Thresholds `json:"bottleneck_thresholds" yaml:"bottleneck_thresholds"`
	BurnoutThresholds    Thresholds `json:"burnout_thresholds" yaml:"burnout_thresholds"`
}

// DefaultCalibration returns the dayshift baseline. Interruption and
// admission durations are the medians observed on the unit; weights and
// thresholds are the documented starting points for scenario work.
func DefaultCalibration() Calibration {
	return Calibration{
		ShiftHours: 12,
		Interruption: InterruptionMinutes{
			NursingQuestion: 2.0,
			ExamCallback:    7.5,
			PeerInterrupt:   7.5,
		},
		Admission: AdmissionMinutes{
			Simple:   60,
			Complex:  90,
			Consult:  45,
			Transfer: 30,
		},
		ComplexShare:         0.3,
		CriticalEventMinutes: 105,
		Workload: WorkloadWeights{
			Interruptions:  0.40,
			Admissions:     0.35,
			CriticalEvents: 0.25,
		},
		Burnout: BurnoutFactors{
			PerInterruptionHour: 0.03,
			PerWorkloadUnit:     0.40,
			PerCriticalEventDay: 0.15,
			Baseline:            0.10,
			InterruptionWeight:  0.25,
			WorkloadWeight:      0.40,
			CriticalWeight:      0.35,
		},
		Cognitive: CognitiveScales{
			Base:                 30,
			PerInterruptionHour:  5,
			PerCriticalHour:      10,
			PerAdmissionHour:     8,
			PerUtilizationExcess: 20,
		},
		Efficiency: EfficiencyFactors{
			InterruptionImpact: 0.05,
			WorkloadImpact:     0.10,
			RoundingImpact:     0.18,
			Floor:              0.30,
		},
		BottleneckThresholds: Thresholds{Medium: 0.40, High: 0.70},
		BurnoutThresholds:    Thresholds{Medium: 0.40, High: 0.70},
	}
}

// LoadCalibration reads a YAML calibration file layered over the defaults,
// so partial files only override the fields they name.
func LoadCalibration(path string) (Calibration, error) {
	cal := DefaultCalibration()
	data, err := os.ReadFile(path)
	if err != nil {
		return Calibration{}, fmt.Errorf("reading calibration %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cal); err != nil {
		return Calibration{}, fmt.Errorf("parsing calibration %s: %w", path, err)
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, fmt.Errorf("calibration %s: %w", path, err)
	}
	return cal, nil
}

// Validate rejects calibrations that would make the formulas non-physical.
func (c Calibration) Validate() error {
	if c.ShiftHours <= 0 {
		return invalidf("shift_hours must be positive, got %.2f", c.ShiftHours)
	}
	for name, v := range map[string]float64{
		"interruption_minutes.nursing_question": c.Interruption.NursingQuestion,
		"interruption_minutes.exam_callback":    c.Interruption.ExamCallback,
		"interruption_minutes.peer_interrupt":   c.Interruption.PeerInterrupt,
		"admission_minutes.simple":              c.Admission.Simple,
		"admission_minutes.complex":             c.Admission.Complex,
		"admission_minutes.consult":             c.Admission.Consult,
		"admission_minutes.transfer":            c.Admission.Transfer,
		"critical_event_minutes":                c.CriticalEventMinutes,
	} {
		if v < 0 {
			return invalidf("%s must be non-negative, got %.2f", name, v)
		}
	}
	if c.ComplexShare < 0 || c.ComplexShare > 1 {
		return invalidf("complex_share must be within [0,1], got %.2f", c.ComplexShare)
	}
	if c.Workload.Interruptions < 0 || c.Workload.Admissions < 0 || c.Workload.CriticalEvents < 0 {
		return invalidf("workload weights must be non-negative")
	}
	if c.Workload.Interruptions+c.Workload.Admissions+c.Workload.CriticalEvents == 0 {
		return invalidf("workload weights must not all be zero")
	}
	for name, th := range map[string]Thresholds{
		"bottleneck_thresholds": c.BottleneckThresholds,
		"burnout_thresholds":    c.BurnoutThresholds,
	} {
		if th.Medium < 0 || th.High > 1 || th.Medium > th.High {
			return invalidf("%s must satisfy 0 <= medium <= high <= 1, got medium=%.2f high=%.2f", name, th.Medium, th.High)
		}
	}
	if c.Efficiency.Floor < 0 || c.Efficiency.Floor > 1 {
		return invalidf("efficiency_factors.floor must be within [0,1], got %.2f", c.Efficiency.Floor)
	}
	return nil
}

// criticalMinutes resolves the per-event duration, preferring the input
// override when set.
func (c Calibration) criticalMinutes(in Inputs) float64 {
	if in.CriticalEventHours > 0 {
		return in.CriticalEventHours * 60
	}
	return c.CriticalEventMinutes
}

// shiftHours resolves the shift length, preferring the input override.
func (c Calibration) shiftHours(in Inputs) float64 {
	if in.ShiftHours > 0 {
		return in.ShiftHours
	}
	return c.ShiftHours
}
