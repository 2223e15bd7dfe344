package scenario

import (
	"fmt"

	"icuflow-mcp/internal/workflow"
)

// ProtectedTime models a block of the shift where nursing questions are
// deflected to a designated responder. The reduction is time-averaged over
// the shift so the evaluation stays a pure function of the snapshot.
type ProtectedTime struct {
	StartHour       float64 `json:"start_hour" yaml:"start_hour"`
	DurationHours   float64 `json:"duration_hours" yaml:"duration_hours"`
	ReductionFactor float64 `json:"reduction_factor" yaml:"reduction_factor"`
}

// StaffCoverage adds providers to the staffing model. Coverage is modeled
// shift-long; the provider count is an integer invariant of the inputs.
type StaffCoverage struct {
	AdditionalProviders int `json:"additional_providers" yaml:"additional_providers"`
}

// TaskBundling scales admission-type durations by a grouping efficiency
// factor (1.0 = no change, 0.8 = 20% faster through batching).
type TaskBundling struct {
	EfficiencyFactor float64 `json:"efficiency_factor" yaml:"efficiency_factor"`
}

// Interventions is the optional strategy set attached to a scenario.
// Nil members are skipped.
type Interventions struct {
	ProtectedTime *ProtectedTime `json:"protected_time,omitempty" yaml:"protected_time,omitempty"`
	StaffCoverage *StaffCoverage `json:"staff_coverage,omitempty" yaml:"staff_coverage,omitempty"`
	TaskBundling  *TaskBundling  `json:"task_bundling,omitempty" yaml:"task_bundling,omitempty"`
}

func (iv Interventions) validate() error {
	if pt := iv.ProtectedTime; pt != nil {
		if pt.ReductionFactor < 0 || pt.ReductionFactor > 1 {
			return fmt.Errorf("protected_time.reduction_factor must be within [0,1], got %.2f", pt.ReductionFactor)
		}
		if pt.DurationHours < 0 || pt.StartHour < 0 {
			return fmt.Errorf("protected_time hours must be non-negative")
		}
	}
	if sc := iv.StaffCoverage; sc != nil && sc.AdditionalProviders < 0 {
		return fmt.Errorf("staff_coverage.additional_providers must be non-negative, got %d", sc.AdditionalProviders)
	}
	if tb := iv.TaskBundling; tb != nil && (tb.EfficiencyFactor <= 0 || tb.EfficiencyFactor > 1) {
		return fmt.Errorf("task_bundling.efficiency_factor must be within (0,1], got %.2f", tb.EfficiencyFactor)
	}
	return nil
}

// apply returns intervention-adjusted copies of the inputs and calibration
// plus a label per applied strategy. The arguments are never mutated.
func (iv Interventions) apply(in workflow.Inputs, cal workflow.Calibration) (workflow.Inputs, workflow.Calibration, []string) {
	var applied []string

	if pt := iv.ProtectedTime; pt != nil && pt.DurationHours > 0 && pt.ReductionFactor > 0 {
		shift := cal.ShiftHours
		if in.ShiftHours > 0 {
			shift = in.ShiftHours
		}
		share := pt.DurationHours / shift
		if share > 1 {
			share = 1
		}
		in.NursingQuestionsPerHour *= 1 - pt.ReductionFactor*share
		applied = append(applied, fmt.Sprintf("protected time %.1fh at %.0f%% deflection", pt.DurationHours, pt.ReductionFactor*100))
	}

	if sc := iv.StaffCoverage; sc != nil && sc.AdditionalProviders > 0 {
		in.Providers += sc.AdditionalProviders
		applied = append(applied, fmt.Sprintf("staff coverage +%d provider(s)", sc.AdditionalProviders))
	}

	if tb := iv.TaskBundling; tb != nil && tb.EfficiencyFactor > 0 && tb.EfficiencyFactor < 1 {
		cal.Admission.Simple *= tb.EfficiencyFactor
		cal.Admission.Complex *= tb.EfficiencyFactor
		cal.Admission.Consult *= tb.EfficiencyFactor
		cal.Admission.Transfer *= tb.EfficiencyFactor
		applied = append(applied, fmt.Sprintf("task bundling at factor %.2f", tb.EfficiencyFactor))
	}

	return in, cal, applied
}
