package workflow

// RiskLevel is a categorical risk indicator derived from a bounded score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// step maps a risk level to an ordinal so deltas can be expressed as
// signed shifts.
func (r RiskLevel) step() int {
	switch r {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// Inputs is an immutable snapshot of the unit state for one evaluation.
// Rates are unit-wide per hour; event counts are per dayshift.
type Inputs struct {
	NursingQuestionsPerHour float64 `json:"nursing_questions_per_hour" yaml:"nursing_questions_per_hour"`
	ExamCallbacksPerHour    float64 `json:"exam_callbacks_per_hour" yaml:"exam_callbacks_per_hour"`
	PeerInterruptsPerHour   float64 `json:"peer_interrupts_per_hour" yaml:"peer_interrupts_per_hour"`

	AdmissionsPerShift int `json:"admissions_per_shift" yaml:"admissions_per_shift"`
	ConsultsPerShift   int `json:"consults_per_shift" yaml:"consults_per_shift"`
	TransfersPerShift  int `json:"transfers_per_shift" yaml:"transfers_per_shift"`

	CriticalEventsPerWeek float64 `json:"critical_events_per_week" yaml:"critical_events_per_week"`
	// CriticalEventHours overrides the calibrated duration per event.
	// Zero means "use calibration".
	CriticalEventHours float64 `json:"critical_event_hours,omitempty" yaml:"critical_event_hours,omitempty"`

	Providers int `json:"providers" yaml:"providers"`
	// ShiftHours of zero means "use calibration" (dayshift default 12).
	ShiftHours float64 `json:"shift_hours,omitempty" yaml:"shift_hours,omitempty"`

	// TaskAllocations maps a focus-task name to scheduled minutes per shift.
	TaskAllocations map[string]float64 `json:"task_allocations,omitempty" yaml:"task_allocations,omitempty"`
}

// TimeImpact is the per-shift minute breakdown across activity classes.
type TimeImpact struct {
	InterruptionMinutes float64 `json:"interruption_minutes"`
	AdmissionMinutes    float64 `json:"admission_minutes"`
	CriticalMinutes     float64 `json:"critical_minutes"`
}

// InterruptionLoadResult summarizes the interruption burden of a shift.
type InterruptionLoadResult struct {
	TotalPerHour             float64 `json:"total_per_hour"`
	PerProviderPerHour       float64 `json:"per_provider_per_hour"`
	PerProviderPerShift      float64 `json:"per_provider_per_shift"`
	HoursLostPerShift        float64 `json:"hours_lost_per_shift"`
	AverageHandlingMinutes   float64 `json:"average_handling_minutes"`
	HoursLostPerProviderShift float64 `json:"hours_lost_per_provider_shift"`
}

// FocusTimeResult is the remaining uninterrupted capacity of one provider.
type FocusTimeResult struct {
	HoursAvailable float64 `json:"hours_available"`
	Overcommitted  bool    `json:"overcommitted"`
	// DeficitHours is the magnitude of the unclamped negative remainder.
	// Zero unless Overcommitted.
	DeficitHours float64 `json:"deficit_hours"`
}

// Outputs is the derived metric snapshot. Every field is a deterministic
// function of the Inputs and Calibration it was computed from; nothing
// carries over between evaluations.
type Outputs struct {
	Interruptions InterruptionLoadResult `json:"interruptions"`
	FocusTime     FocusTimeResult        `json:"focus_time"`
	TimeImpact    TimeImpact             `json:"time_impact"`

	RoutineTaskDelayMinutes float64 `json:"routine_task_delay_minutes"`

	WorkloadScore      float64 `json:"workload_score"`
	CognitiveLoad      float64 `json:"cognitive_load"`
	ProviderEfficiency float64 `json:"provider_efficiency"`
	BurnoutScore       float64 `json:"burnout_score"`

	BottleneckRisk RiskLevel `json:"bottleneck_risk"`
	BurnoutRisk    RiskLevel `json:"burnout_risk"`
}

// Delta is the element-wise difference between two Outputs snapshots
// (variant minus baseline). Risk levels are reported as ordinal shifts.
type Delta struct {
	InterruptionsPerHour       float64 `json:"interruptions_per_hour"`
	InterruptionsPerProvider   float64 `json:"interruptions_per_provider_per_hour"`
	HoursLostPerShift          float64 `json:"hours_lost_per_shift"`
	FocusHoursAvailable        float64 `json:"focus_hours_available"`
	RoutineTaskDelayMinutes    float64 `json:"routine_task_delay_minutes"`
	InterruptionMinutes        float64 `json:"interruption_minutes"`
	AdmissionMinutes           float64 `json:"admission_minutes"`
	CriticalMinutes            float64 `json:"critical_minutes"`
	WorkloadScore              float64 `json:"workload_score"`
	CognitiveLoad              float64 `json:"cognitive_load"`
	ProviderEfficiency         float64 `json:"provider_efficiency"`
	BurnoutScore               float64 `json:"burnout_score"`
	BottleneckRiskShift        int     `json:"bottleneck_risk_shift"`
	BurnoutRiskShift           int     `json:"burnout_risk_shift"`
}

// Compare returns the element-wise delta of variant against baseline.
// Compare(x, x) is all-zero.
func Compare(baseline, variant Outputs) Delta {
	return Delta{
		InterruptionsPerHour:     variant.Interruptions.TotalPerHour - baseline.Interruptions.TotalPerHour,
		InterruptionsPerProvider: variant.Interruptions.PerProviderPerHour - baseline.Interruptions.PerProviderPerHour,
		HoursLostPerShift:        variant.Interruptions.HoursLostPerShift - baseline.Interruptions.HoursLostPerShift,
		FocusHoursAvailable:      variant.FocusTime.HoursAvailable - baseline.FocusTime.HoursAvailable,
		RoutineTaskDelayMinutes:  variant.RoutineTaskDelayMinutes - baseline.RoutineTaskDelayMinutes,
		InterruptionMinutes:      variant.TimeImpact.InterruptionMinutes - baseline.TimeImpact.InterruptionMinutes,
		AdmissionMinutes:         variant.TimeImpact.AdmissionMinutes - baseline.TimeImpact.AdmissionMinutes,
		CriticalMinutes:          variant.TimeImpact.CriticalMinutes - baseline.TimeImpact.CriticalMinutes,
		WorkloadScore:            variant.WorkloadScore - baseline.WorkloadScore,
		CognitiveLoad:            variant.CognitiveLoad - baseline.CognitiveLoad,
		ProviderEfficiency:       variant.ProviderEfficiency - baseline.ProviderEfficiency,
		BurnoutScore:             variant.BurnoutScore - baseline.BurnoutScore,
		BottleneckRiskShift:      variant.BottleneckRisk.step() - baseline.BottleneckRisk.step(),
		BurnoutRiskShift:         variant.BurnoutRisk.step() - baseline.BurnoutRisk.step(),
	}
}
