package scenario

import (
	"fmt"
	"sort"
	"time"

	"icuflow-mcp/internal/workflow"
)

// Scenario is a named, immutable staffing configuration: an input snapshot
// plus optional interventions and a calibration override.
type Scenario struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Inputs      workflow.Inputs `json:"inputs" yaml:"inputs"`
	// Calibration of nil means "use the manager's base calibration".
	Calibration   *workflow.Calibration `json:"calibration,omitempty" yaml:"calibration,omitempty"`
	Interventions Interventions         `json:"interventions,omitempty" yaml:"interventions,omitempty"`
	CreatedAt     time.Time             `json:"created_at" yaml:"created_at"`
}

// Report is the outcome of running one scenario.
type Report struct {
	Scenario             string           `json:"scenario"`
	Description          string           `json:"description,omitempty"`
	EffectiveInputs      workflow.Inputs  `json:"effective_inputs"`
	Outputs              workflow.Outputs `json:"outputs"`
	AppliedInterventions []string         `json:"applied_interventions,omitempty"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

// VariantReport pairs a variant run with its delta against the baseline.
type VariantReport struct {
	Report
	Delta workflow.Delta `json:"delta_vs_baseline"`
}

// Comparison holds a baseline run and the variants measured against it.
type Comparison struct {
	Baseline Report          `json:"baseline"`
	Variants []VariantReport `json:"variants"`
}

// Manager owns the scenario registry of a single evaluation session.
// Each session gets its own Manager instance, so no state is shared across
// sessions; runs operate on value copies and never mutate stored scenarios
// or the base calibration.
type Manager struct {
	base      workflow.Calibration
	scenarios map[string]Scenario
	now       func() time.Time
}

// NewManager creates an empty registry bound to a base calibration.
func NewManager(base workflow.Calibration) *Manager {
	return &Manager{
		base:      base,
		scenarios: make(map[string]Scenario),
		now:       time.Now,
	}
}

// BaseCalibration returns the calibration scenarios default to.
func (m *Manager) BaseCalibration() workflow.Calibration {
	return m.base
}

// Create registers a scenario. The name must be unused and the inputs and
// interventions must validate; nothing is evaluated yet.
func (m *Manager) Create(name, description string, in workflow.Inputs, iv Interventions) (Scenario, error) {
	if name == "" {
		return Scenario{}, fmt.Errorf("scenario name must not be empty")
	}
	if _, exists := m.scenarios[name]; exists {
		return Scenario{}, fmt.Errorf("scenario %q already exists", name)
	}
	if err := in.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", name, err)
	}
	if err := iv.validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", name, err)
	}

	sc := Scenario{
		Name:          name,
		Description:   description,
		Inputs:        in,
		Interventions: iv,
		CreatedAt:     m.now(),
	}
	m.scenarios[name] = sc
	return sc, nil
}

// Get looks up a scenario by name.
func (m *Manager) Get(name string) (Scenario, bool) {
	sc, ok := m.scenarios[name]
	return sc, ok
}

// List returns all scenarios sorted by name.
func (m *Manager) List() []Scenario {
	out := make([]Scenario, 0, len(m.scenarios))
	for _, sc := range m.scenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run evaluates a scenario with its interventions applied to value copies.
// The stored scenario and the base calibration are left untouched, so
// repeated runs of the same scenario are identical.
func (m *Manager) Run(name string) (Report, error) {
	sc, ok := m.scenarios[name]
	if !ok {
		return Report{}, fmt.Errorf("scenario %q not found", name)
	}

	cal := m.base
	if sc.Calibration != nil {
		cal = *sc.Calibration
	}

	in, cal, applied := sc.Interventions.apply(sc.Inputs, cal)
	out, err := workflow.Evaluate(in, cal)
	if err != nil {
		return Report{}, fmt.Errorf("running scenario %q: %w", name, err)
	}

	return Report{
		Scenario:             sc.Name,
		Description:          sc.Description,
		EffectiveInputs:      in,
		Outputs:              out,
		AppliedInterventions: applied,
		GeneratedAt:          m.now(),
	}, nil
}

// Compare runs the baseline and every variant, reporting each variant as
// an element-wise delta against the baseline outputs.
func (m *Manager) Compare(baseline string, variants ...string) (Comparison, error) {
	base, err := m.Run(baseline)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{Baseline: base}
	for _, name := range variants {
		rep, err := m.Run(name)
		if err != nil {
			return Comparison{}, err
		}
		cmp.Variants = append(cmp.Variants, VariantReport{
			Report: rep,
			Delta:  workflow.Compare(base.Outputs, rep.Outputs),
		})
	}
	return cmp, nil
}
