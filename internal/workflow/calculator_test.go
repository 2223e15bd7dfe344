package workflow

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// uniformCalibration gives every interruption type a 5-minute handling
// time, which makes the shift arithmetic easy to verify by hand.
func uniformCalibration() Calibration {
	cal := DefaultCalibration()
	cal.Interruption = InterruptionMinutes{
		NursingQuestion: 5,
		ExamCallback:    5,
		PeerInterrupt:   5,
	}
	return cal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateWorkedExample(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 4,
		ExamCallbacksPerHour:    2,
		PeerInterruptsPerHour:   1,
		Providers:               2,
	}

	out, err := Evaluate(in, uniformCalibration())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !almostEqual(out.Interruptions.TotalPerHour, 7) {
		t.Errorf("TotalPerHour = %v, want 7", out.Interruptions.TotalPerHour)
	}
	if !almostEqual(out.Interruptions.PerProviderPerHour, 3.5) {
		t.Errorf("PerProviderPerHour = %v, want 3.5", out.Interruptions.PerProviderPerHour)
	}
	if !almostEqual(out.Interruptions.HoursLostPerShift, 7) {
		t.Errorf("HoursLostPerShift = %v, want 7", out.Interruptions.HoursLostPerShift)
	}
	if !almostEqual(out.TimeImpact.InterruptionMinutes, 420) {
		t.Errorf("InterruptionMinutes = %v, want 420", out.TimeImpact.InterruptionMinutes)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 5,
		ExamCallbacksPerHour:    3,
		PeerInterruptsPerHour:   2,
		AdmissionsPerShift:      3,
		ConsultsPerShift:        4,
		TransfersPerShift:       2,
		CriticalEventsPerWeek:   5,
		Providers:               2,
		TaskAllocations:         map[string]float64{"charting": 90, "exams": 60},
	}
	cal := DefaultCalibration()

	first, err := Evaluate(in, cal)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := Evaluate(in, cal)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMoreProvidersNeverIncreaseWorkload(t *testing.T) {
	base := Inputs{
		NursingQuestionsPerHour: 4,
		ExamCallbacksPerHour:    2,
		PeerInterruptsPerHour:   1,
		AdmissionsPerShift:      3,
		CriticalEventsPerWeek:   5,
		Providers:               2,
	}
	cal := uniformCalibration()

	closed, err := Evaluate(base, cal)
	if err != nil {
		t.Fatalf("Evaluate(closed) error = %v", err)
	}

	hybrid := base
	hybrid.Providers = 5
	open, err := Evaluate(hybrid, cal)
	if err != nil {
		t.Fatalf("Evaluate(hybrid) error = %v", err)
	}

	if !almostEqual(open.Interruptions.PerProviderPerHour, 1.4) {
		t.Errorf("hybrid PerProviderPerHour = %v, want 1.4", open.Interruptions.PerProviderPerHour)
	}
	if open.WorkloadScore >= closed.WorkloadScore {
		t.Errorf("workload score did not drop with more providers: closed=%v hybrid=%v",
			closed.WorkloadScore, open.WorkloadScore)
	}
}

func TestHoursLostMonotoneInEachRate(t *testing.T) {
	base := Inputs{
		NursingQuestionsPerHour: 2,
		ExamCallbacksPerHour:    2,
		PeerInterruptsPerHour:   2,
		Providers:               3,
	}
	cal := DefaultCalibration()

	bumps := []struct {
		name string
		mut  func(*Inputs)
	}{
		{"NursingQuestions", func(in *Inputs) { in.NursingQuestionsPerHour += 1.5 }},
		{"ExamCallbacks", func(in *Inputs) { in.ExamCallbacksPerHour += 1.5 }},
		{"PeerInterrupts", func(in *Inputs) { in.PeerInterruptsPerHour += 1.5 }},
	}

	ref, err := InterruptionLoad(base, cal)
	if err != nil {
		t.Fatalf("InterruptionLoad() error = %v", err)
	}

	for _, tt := range bumps {
		t.Run(tt.name, func(t *testing.T) {
			bumped := base
			tt.mut(&bumped)
			got, err := InterruptionLoad(bumped, cal)
			if err != nil {
				t.Fatalf("InterruptionLoad() error = %v", err)
			}
			if got.HoursLostPerShift < ref.HoursLostPerShift {
				t.Errorf("HoursLostPerShift decreased after raising %s: %v -> %v",
					tt.name, ref.HoursLostPerShift, got.HoursLostPerShift)
			}
		})
	}
}

func TestEvaluateRejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
	}{
		{"ZeroProviders", Inputs{NursingQuestionsPerHour: 4, Providers: 0}},
		{"NegativeProviders", Inputs{Providers: -2}},
		{"NegativeRate", Inputs{NursingQuestionsPerHour: -0.5, Providers: 2}},
		{"NegativeAdmissions", Inputs{Providers: 2, AdmissionsPerShift: -1}},
		{"NaNRate", Inputs{ExamCallbacksPerHour: math.NaN(), Providers: 2}},
		{"NegativeAllocation", Inputs{Providers: 2, TaskAllocations: map[string]float64{"rounds": -10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.in, DefaultCalibration())
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Evaluate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestFocusTimeClampsAndFlagsOvercommitment(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 6,
		ExamCallbacksPerHour:    4,
		PeerInterruptsPerHour:   2,
		CriticalEventsPerWeek:   14,
		Providers:               1,
		TaskAllocations:         map[string]float64{"charting": 240, "exams": 240, "teaching": 120},
	}

	out, err := Evaluate(in, uniformCalibration())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if out.FocusTime.HoursAvailable != 0 {
		t.Errorf("HoursAvailable = %v, want 0 (clamped)", out.FocusTime.HoursAvailable)
	}
	if !out.FocusTime.Overcommitted {
		t.Error("expected Overcommitted flag")
	}
	if out.FocusTime.DeficitHours <= 0 {
		t.Errorf("DeficitHours = %v, want > 0", out.FocusTime.DeficitHours)
	}
	if !almostEqual(out.RoutineTaskDelayMinutes, out.FocusTime.DeficitHours*60) {
		t.Errorf("RoutineTaskDelayMinutes = %v, want %v", out.RoutineTaskDelayMinutes, out.FocusTime.DeficitHours*60)
	}
}

func TestFocusTimePositiveWhenLight(t *testing.T) {
	in := Inputs{NursingQuestionsPerHour: 1, Providers: 3}

	focus, err := FocusTimeRemaining(in, DefaultCalibration())
	if err != nil {
		t.Fatalf("FocusTimeRemaining() error = %v", err)
	}
	if focus.Overcommitted {
		t.Error("light shift flagged Overcommitted")
	}
	if focus.HoursAvailable <= 0 || focus.HoursAvailable > 12 {
		t.Errorf("HoursAvailable = %v, want within (0, 12]", focus.HoursAvailable)
	}
	if focus.DeficitHours != 0 {
		t.Errorf("DeficitHours = %v, want 0", focus.DeficitHours)
	}
}

func TestClassifyRisk(t *testing.T) {
	th := Thresholds{Medium: 0.4, High: 0.7}

	tests := []struct {
		name  string
		score float64
		want  RiskLevel
	}{
		{"WellBelow", 0.0, RiskLow},
		{"JustBelowMedium", 0.399, RiskLow},
		{"AtMedium", 0.4, RiskMedium},
		{"BetweenBands", 0.55, RiskMedium},
		{"AtHigh", 0.7, RiskHigh},
		{"Saturated", 1.0, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.score, th); got != tt.want {
				t.Errorf("ClassifyRisk(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestCompareSelfIsZero(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 5,
		ExamCallbacksPerHour:    3,
		PeerInterruptsPerHour:   2,
		AdmissionsPerShift:      3,
		CriticalEventsPerWeek:   5,
		Providers:               2,
	}
	out, err := Evaluate(in, DefaultCalibration())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if delta := Compare(out, out); !reflect.DeepEqual(delta, Delta{}) {
		t.Errorf("Compare(x, x) = %+v, want zero delta", delta)
	}
}

func TestCompareClosedVsHybridStaffing(t *testing.T) {
	closed := Inputs{
		NursingQuestionsPerHour: 4,
		ExamCallbacksPerHour:    2,
		PeerInterruptsPerHour:   1,
		Providers:               2,
	}
	hybrid := closed
	hybrid.Providers = 5
	cal := uniformCalibration()

	closedOut, err := Evaluate(closed, cal)
	if err != nil {
		t.Fatalf("Evaluate(closed) error = %v", err)
	}
	hybridOut, err := Evaluate(hybrid, cal)
	if err != nil {
		t.Fatalf("Evaluate(hybrid) error = %v", err)
	}

	delta := Compare(closedOut, hybridOut)
	if !almostEqual(delta.InterruptionsPerProvider, -2.1) {
		t.Errorf("InterruptionsPerProvider delta = %v, want -2.1", delta.InterruptionsPerProvider)
	}
	if delta.WorkloadScore >= 0 {
		t.Errorf("WorkloadScore delta = %v, want negative", delta.WorkloadScore)
	}
	if delta.InterruptionsPerHour != 0 {
		t.Errorf("InterruptionsPerHour delta = %v, want 0 (unit-wide rate unchanged)", delta.InterruptionsPerHour)
	}
}

func TestScoresStayBounded(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 20,
		ExamCallbacksPerHour:    20,
		PeerInterruptsPerHour:   20,
		AdmissionsPerShift:      20,
		ConsultsPerShift:        20,
		TransfersPerShift:       20,
		CriticalEventsPerWeek:   50,
		Providers:               1,
	}

	out, err := Evaluate(in, DefaultCalibration())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if out.WorkloadScore < 0 || out.WorkloadScore > 1 {
		t.Errorf("WorkloadScore = %v, want within [0,1]", out.WorkloadScore)
	}
	if out.BurnoutScore < 0 || out.BurnoutScore > 1 {
		t.Errorf("BurnoutScore = %v, want within [0,1]", out.BurnoutScore)
	}
	if out.CognitiveLoad < 0 || out.CognitiveLoad > 100 {
		t.Errorf("CognitiveLoad = %v, want within [0,100]", out.CognitiveLoad)
	}
	if out.ProviderEfficiency < DefaultCalibration().Efficiency.Floor-1e-9 || out.ProviderEfficiency > 1 {
		t.Errorf("ProviderEfficiency = %v, want within [floor,1]", out.ProviderEfficiency)
	}
	if out.BottleneckRisk != RiskHigh {
		t.Errorf("BottleneckRisk = %v, want high for a saturated single-provider shift", out.BottleneckRisk)
	}
}
