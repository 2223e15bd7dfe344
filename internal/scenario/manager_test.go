package scenario

import (
	"reflect"
	"strings"
	"testing"

	"icuflow-mcp/internal/workflow"
)

func busyShift() workflow.Inputs {
	return workflow.Inputs{
		NursingQuestionsPerHour: 5,
		ExamCallbacksPerHour:    3,
		PeerInterruptsPerHour:   2,
		AdmissionsPerShift:      3,
		ConsultsPerShift:        4,
		TransfersPerShift:       2,
		CriticalEventsPerWeek:   5,
		Providers:               2,
	}
}

func TestCreateRejectsDuplicatesAndBadInputs(t *testing.T) {
	m := NewManager(workflow.DefaultCalibration())

	if _, err := m.Create("dayshift", "", busyShift(), Interventions{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := m.Create("dayshift", "", busyShift(), Interventions{}); err == nil {
		t.Error("duplicate Create() = nil, want error")
	}
	if _, err := m.Create("", "", busyShift(), Interventions{}); err == nil {
		t.Error("empty name Create() = nil, want error")
	}

	bad := busyShift()
	bad.Providers = 0
	if _, err := m.Create("unstaffed", "", bad, Interventions{}); err == nil {
		t.Error("invalid inputs Create() = nil, want error")
	}

	if _, err := m.Create("bundled", "", busyShift(), Interventions{
		TaskBundling: &TaskBundling{EfficiencyFactor: 1.4},
	}); err == nil {
		t.Error("invalid intervention Create() = nil, want error")
	}
}

func TestRunIsRepeatableAndPure(t *testing.T) {
	m := NewManager(workflow.DefaultCalibration())
	if _, err := m.Create("dayshift", "closed model", busyShift(), Interventions{
		ProtectedTime: &ProtectedTime{StartHour: 9, DurationHours: 2, ReductionFactor: 0.5},
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := m.Run("dayshift")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := m.Run("dayshift")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(first.Outputs, second.Outputs) {
		t.Errorf("repeated runs diverged:\nfirst:  %+v\nsecond: %+v", first.Outputs, second.Outputs)
	}

	// The stored scenario still carries the unreduced rate.
	sc, _ := m.Get("dayshift")
	if sc.Inputs.NursingQuestionsPerHour != 5 {
		t.Errorf("stored scenario mutated: NursingQuestionsPerHour = %v, want 5", sc.Inputs.NursingQuestionsPerHour)
	}
	if first.EffectiveInputs.NursingQuestionsPerHour >= 5 {
		t.Errorf("protected time had no effect: effective rate = %v", first.EffectiveInputs.NursingQuestionsPerHour)
	}
	if m.BaseCalibration().Admission.Simple != 60 {
		t.Errorf("base calibration mutated: Admission.Simple = %v, want 60", m.BaseCalibration().Admission.Simple)
	}
}

func TestInterventionArithmetic(t *testing.T) {
	in := busyShift()
	cal := workflow.DefaultCalibration()

	t.Run("ProtectedTime", func(t *testing.T) {
		iv := Interventions{ProtectedTime: &ProtectedTime{StartHour: 9, DurationHours: 3, ReductionFactor: 0.4}}
		got, _, applied := iv.apply(in, cal)
		// 40% deflection over 3 of 12 hours is a 10% time-averaged cut.
		want := 5 * (1 - 0.4*3.0/12.0)
		if got.NursingQuestionsPerHour != want {
			t.Errorf("NursingQuestionsPerHour = %v, want %v", got.NursingQuestionsPerHour, want)
		}
		if len(applied) != 1 || !strings.Contains(applied[0], "protected time") {
			t.Errorf("applied = %v, want one protected time label", applied)
		}
	})

	t.Run("StaffCoverage", func(t *testing.T) {
		iv := Interventions{StaffCoverage: &StaffCoverage{AdditionalProviders: 2}}
		got, _, _ := iv.apply(in, cal)
		if got.Providers != 4 {
			t.Errorf("Providers = %d, want 4", got.Providers)
		}
	})

	t.Run("TaskBundling", func(t *testing.T) {
		iv := Interventions{TaskBundling: &TaskBundling{EfficiencyFactor: 0.8}}
		_, gotCal, _ := iv.apply(in, cal)
		if gotCal.Admission.Simple != 48 {
			t.Errorf("Admission.Simple = %v, want 48", gotCal.Admission.Simple)
		}
		if cal.Admission.Simple != 60 {
			t.Errorf("source calibration mutated: Admission.Simple = %v, want 60", cal.Admission.Simple)
		}
	})

	t.Run("NoOps", func(t *testing.T) {
		iv := Interventions{TaskBundling: &TaskBundling{EfficiencyFactor: 1.0}}
		_, gotCal, applied := iv.apply(in, cal)
		if len(applied) != 0 {
			t.Errorf("applied = %v, want none for factor 1.0", applied)
		}
		if !reflect.DeepEqual(gotCal, cal) {
			t.Error("no-op intervention changed the calibration")
		}
	})
}

func TestCompareVariantsAgainstBaseline(t *testing.T) {
	m := NewManager(workflow.DefaultCalibration())

	if _, err := m.Create("closed", "2 providers", busyShift(), Interventions{}); err != nil {
		t.Fatalf("Create(closed) error = %v", err)
	}
	hybrid := busyShift()
	hybrid.Providers = 5
	if _, err := m.Create("hybrid", "5 providers", hybrid, Interventions{}); err != nil {
		t.Fatalf("Create(hybrid) error = %v", err)
	}

	cmp, err := m.Compare("closed", "hybrid")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(cmp.Variants) != 1 {
		t.Fatalf("len(Variants) = %d, want 1", len(cmp.Variants))
	}
	v := cmp.Variants[0]
	if v.Scenario != "hybrid" {
		t.Errorf("variant scenario = %q, want hybrid", v.Scenario)
	}
	if v.Delta.WorkloadScore >= 0 {
		t.Errorf("WorkloadScore delta = %v, want negative for added staffing", v.Delta.WorkloadScore)
	}
	if v.Delta.InterruptionsPerProvider >= 0 {
		t.Errorf("InterruptionsPerProvider delta = %v, want negative", v.Delta.InterruptionsPerProvider)
	}

	if _, err := m.Compare("closed", "missing"); err == nil {
		t.Error("Compare() with unknown variant = nil, want error")
	}
	if _, err := m.Compare("missing"); err == nil {
		t.Error("Compare() with unknown baseline = nil, want error")
	}
}

func TestSessionIsolation(t *testing.T) {
	a := NewManager(workflow.DefaultCalibration())
	b := NewManager(workflow.DefaultCalibration())

	if _, err := a.Create("dayshift", "", busyShift(), Interventions{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, ok := b.Get("dayshift"); ok {
		t.Error("scenario leaked across manager instances")
	}
	if got := len(b.List()); got != 0 {
		t.Errorf("len(b.List()) = %d, want 0", got)
	}
}
