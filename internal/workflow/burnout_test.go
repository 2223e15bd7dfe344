package workflow

import (
	"errors"
	"testing"
)

func TestBurnoutBreakdownMatchesEvaluate(t *testing.T) {
	in := Inputs{
		NursingQuestionsPerHour: 5,
		ExamCallbacksPerHour:    3,
		PeerInterruptsPerHour:   2,
		AdmissionsPerShift:      4,
		CriticalEventsPerWeek:   7,
		Providers:               2,
	}
	cal := DefaultCalibration()

	detail, err := BurnoutBreakdown(in, cal)
	if err != nil {
		t.Fatalf("BurnoutBreakdown() error = %v", err)
	}
	out, err := Evaluate(in, cal)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !almostEqual(detail.TotalRisk, out.BurnoutScore) {
		t.Errorf("TotalRisk = %v, want %v (Outputs.BurnoutScore)", detail.TotalRisk, out.BurnoutScore)
	}
	if detail.Category != out.BurnoutRisk {
		t.Errorf("Category = %v, want %v", detail.Category, out.BurnoutRisk)
	}
	for name, v := range detail.Components {
		if v < 0 || v > 1 {
			t.Errorf("component %s = %v, want within [0,1]", name, v)
		}
	}
	for _, name := range []string{"interruptions", "workload", "critical_events", "baseline"} {
		if _, ok := detail.Components[name]; !ok {
			t.Errorf("missing component %q", name)
		}
		if _, ok := detail.Weights[name]; !ok {
			t.Errorf("missing weight %q", name)
		}
	}
}

func TestBurnoutBreakdownRejectsInvalid(t *testing.T) {
	if _, err := BurnoutBreakdown(Inputs{Providers: 0}, DefaultCalibration()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("BurnoutBreakdown() error = %v, want ErrInvalidInput", err)
	}
}
