package workflow

import "math"

// Evaluate maps an Inputs snapshot to an Outputs snapshot. It is pure:
// no shared state is read or written, identical arguments yield identical
// results, and the only failure mode is ErrInvalidInput.
func Evaluate(in Inputs, cal Calibration) (Outputs, error) {
	if err := cal.Validate(); err != nil {
		return Outputs{}, err
	}
	if err := in.Validate(); err != nil {
		return Outputs{}, err
	}

	load := interruptionLoad(in, cal)
	impact := timeImpact(in, cal, load)
	focus := focusTime(in, cal, load)
	utilization := shiftUtilization(in, cal, impact)

	score := workloadScore(in, cal, load, impact)
	burnout := burnoutScore(in, cal, load, utilization)

	return Outputs{
		Interruptions:           load,
		FocusTime:               focus,
		TimeImpact:              impact,
		RoutineTaskDelayMinutes: focus.DeficitHours * 60,
		WorkloadScore:           score,
		CognitiveLoad:           cognitiveLoad(in, cal, load, utilization),
		ProviderEfficiency:      providerEfficiency(in, cal, load, utilization),
		BurnoutScore:            burnout,
		BottleneckRisk:          ClassifyRisk(score, cal.BottleneckThresholds),
		BurnoutRisk:             ClassifyRisk(burnout, cal.BurnoutThresholds),
	}, nil
}

// Validate rejects non-physical snapshots before any arithmetic runs.
func (in Inputs) Validate() error {
	if in.Providers <= 0 {
		return invalidf("providers must be positive, got %d", in.Providers)
	}
	for name, v := range map[string]float64{
		"nursing_questions_per_hour": in.NursingQuestionsPerHour,
		"exam_callbacks_per_hour":    in.ExamCallbacksPerHour,
		"peer_interrupts_per_hour":   in.PeerInterruptsPerHour,
		"critical_events_per_week":   in.CriticalEventsPerWeek,
		"critical_event_hours":       in.CriticalEventHours,
		"shift_hours":                in.ShiftHours,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("%s must be a non-negative number, got %v", name, v)
		}
	}
	for name, v := range map[string]int{
		"admissions_per_shift": in.AdmissionsPerShift,
		"consults_per_shift":   in.ConsultsPerShift,
		"transfers_per_shift":  in.TransfersPerShift,
	} {
		if v < 0 {
			return invalidf("%s must be non-negative, got %d", name, v)
		}
	}
	for task, minutes := range in.TaskAllocations {
		if minutes < 0 || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
			return invalidf("task allocation %q must be a non-negative number, got %v", task, minutes)
		}
	}
	return nil
}

// InterruptionLoad sums the interruption rates into a per-shift burden.
// Hours lost are unit-wide: each interruption costs its calibrated
// handling duration regardless of which provider absorbs it.
func InterruptionLoad(in Inputs, cal Calibration) (InterruptionLoadResult, error) {
	if err := in.Validate(); err != nil {
		return InterruptionLoadResult{}, err
	}
	return interruptionLoad(in, cal), nil
}

func interruptionLoad(in Inputs, cal Calibration) InterruptionLoadResult {
	shift := cal.shiftHours(in)
	providers := float64(in.Providers)

	totalPerHour := in.NursingQuestionsPerHour + in.ExamCallbacksPerHour + in.PeerInterruptsPerHour
	weightedMinutes := in.NursingQuestionsPerHour*cal.Interruption.NursingQuestion +
		in.ExamCallbacksPerHour*cal.Interruption.ExamCallback +
		in.PeerInterruptsPerHour*cal.Interruption.PeerInterrupt

	hoursLost := weightedMinutes * shift / 60

	avgHandling := 0.0
	if totalPerHour > 0 {
		avgHandling = weightedMinutes / totalPerHour
	}

	return InterruptionLoadResult{
		TotalPerHour:              totalPerHour,
		PerProviderPerHour:        totalPerHour / providers,
		PerProviderPerShift:       totalPerHour / providers * shift,
		HoursLostPerShift:         hoursLost,
		HoursLostPerProviderShift: hoursLost / providers,
		AverageHandlingMinutes:    avgHandling,
	}
}

// FocusTimeRemaining computes the uninterrupted hours left to one provider
// after interruptions, expected critical events, and scheduled task
// allocations. The result clamps at zero; the deficit is kept separately.
func FocusTimeRemaining(in Inputs, cal Calibration) (FocusTimeResult, error) {
	if err := in.Validate(); err != nil {
		return FocusTimeResult{}, err
	}
	return focusTime(in, cal, interruptionLoad(in, cal)), nil
}

func focusTime(in Inputs, cal Calibration, load InterruptionLoadResult) FocusTimeResult {
	shift := cal.shiftHours(in)

	taskHours := 0.0
	for _, minutes := range in.TaskAllocations {
		taskHours += minutes / 60
	}

	remaining := shift - load.HoursLostPerProviderShift - criticalHoursPerShift(in, cal) - taskHours
	if remaining >= 0 {
		return FocusTimeResult{HoursAvailable: remaining}
	}
	return FocusTimeResult{
		HoursAvailable: 0,
		Overcommitted:  true,
		DeficitHours:   -remaining,
	}
}

// criticalHoursPerShift converts the weekly critical-event frequency to
// expected occurrences per dayshift times the per-event duration.
func criticalHoursPerShift(in Inputs, cal Calibration) float64 {
	perDay := in.CriticalEventsPerWeek / 7
	return perDay * cal.criticalMinutes(in) / 60
}

// WorkloadScore is the bounded [0,1] weighted normalization of the
// interruption, admission, and critical-event burdens against the total
// provider-hours of the shift. More providers for the same load can only
// lower it.
func WorkloadScore(in Inputs, cal Calibration) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	load := interruptionLoad(in, cal)
	return workloadScore(in, cal, load, timeImpact(in, cal, load)), nil
}

func workloadScore(in Inputs, cal Calibration, load InterruptionLoadResult, impact TimeImpact) float64 {
	providerHours := float64(in.Providers) * cal.shiftHours(in)

	interruptions := load.HoursLostPerShift / providerHours
	admissions := impact.AdmissionMinutes / 60 / providerHours
	critical := impact.CriticalMinutes / 60 / providerHours

	w := cal.Workload
	return clamp01(w.Interruptions*interruptions + w.Admissions*admissions + w.CriticalEvents*critical)
}

// ClassifyRisk buckets a bounded score by pure threshold lookup. A score
// below Medium is low, below High is medium, otherwise high.
func ClassifyRisk(score float64, th Thresholds) RiskLevel {
	switch {
	case score < th.Medium:
		return RiskLow
	case score < th.High:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func timeImpact(in Inputs, cal Calibration, load InterruptionLoadResult) TimeImpact {
	blendedAdmission := (1-cal.ComplexShare)*cal.Admission.Simple + cal.ComplexShare*cal.Admission.Complex
	admissionMinutes := float64(in.AdmissionsPerShift)*blendedAdmission +
		float64(in.ConsultsPerShift)*cal.Admission.Consult +
		float64(in.TransfersPerShift)*cal.Admission.Transfer

	return TimeImpact{
		InterruptionMinutes: load.HoursLostPerShift * 60,
		AdmissionMinutes:    admissionMinutes,
		CriticalMinutes:     criticalHoursPerShift(in, cal) * 60,
	}
}

// shiftUtilization is the ratio of scheduled patient-flow and critical
// work to available provider-hours. Unlike the workload score it is not
// clamped: values above 1 mean the shift is oversubscribed before a single
// interruption lands.
func shiftUtilization(in Inputs, cal Calibration, impact TimeImpact) float64 {
	providerHours := float64(in.Providers) * cal.shiftHours(in)
	return (impact.AdmissionMinutes + impact.CriticalMinutes) / 60 / providerHours
}

func cognitiveLoad(in Inputs, cal Calibration, load InterruptionLoadResult, utilization float64) float64 {
	interruptHours := load.PerProviderPerShift * load.AverageHandlingMinutes / 60
	criticalHours := criticalHoursPerShift(in, cal)
	blendedAdmission := (cal.Admission.Simple + cal.Admission.Complex) / 2
	admissionHours := float64(in.AdmissionsPerShift) * blendedAdmission / 60

	total := cal.Cognitive.Base +
		interruptHours*cal.Cognitive.PerInterruptionHour +
		criticalHours*cal.Cognitive.PerCriticalHour +
		admissionHours*cal.Cognitive.PerAdmissionHour +
		math.Max(0, utilization-1)*cal.Cognitive.PerUtilizationExcess

	return math.Min(100, math.Max(0, total))
}

func providerEfficiency(in Inputs, cal Calibration, load InterruptionLoadResult, utilization float64) float64 {
	providerHours := float64(in.Providers) * cal.shiftHours(in)

	interruptionLoss := load.PerProviderPerHour * cal.Efficiency.InterruptionImpact
	workloadLoss := math.Max(0, utilization-1) * cal.Efficiency.WorkloadImpact
	criticalLoss := criticalHoursPerShift(in, cal) / providerHours

	eff := 1.0 - interruptionLoss - workloadLoss - criticalLoss - cal.Efficiency.RoundingImpact
	return math.Min(1, math.Max(cal.Efficiency.Floor, eff))
}

// burnoutScore accumulates the shift-long strain factors into a bounded
// score. Each factor is capped at 1 before weighting so one runaway input
// cannot mask the others.
func burnoutScore(in Inputs, cal Calibration, load InterruptionLoadResult, utilization float64) float64 {
	b := cal.Burnout

	interruptionFactor := math.Min(1, load.PerProviderPerHour*b.PerInterruptionHour)
	workloadFactor := math.Min(1, utilization*b.PerWorkloadUnit)
	criticalFactor := math.Min(1, in.CriticalEventsPerWeek/7*b.PerCriticalEventDay)

	return clamp01(b.Baseline +
		interruptionFactor*b.InterruptionWeight +
		workloadFactor*b.WorkloadWeight +
		criticalFactor*b.CriticalWeight)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
