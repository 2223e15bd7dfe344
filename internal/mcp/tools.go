package mcp

// inputsSchema describes the workflow input snapshot accepted by every
// evaluation tool. Rates are unit-wide per hour; counts are per shift.
func inputsSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"nursing_questions_per_hour": map[string]interface{}{"type": "number", "description": "Unit-wide nursing questions per hour"},
			"exam_callbacks_per_hour":    map[string]interface{}{"type": "number", "description": "Unit-wide exam callbacks per hour"},
			"peer_interrupts_per_hour":   map[string]interface{}{"type": "number", "description": "Unit-wide peer interruptions per hour"},
			"admissions_per_shift":       map[string]interface{}{"type": "integer", "description": "Admissions arriving during the shift"},
			"consults_per_shift":         map[string]interface{}{"type": "integer", "description": "Consults during the shift"},
			"transfers_per_shift":        map[string]interface{}{"type": "integer", "description": "Transfers during the shift"},
			"critical_events_per_week":   map[string]interface{}{"type": "number", "description": "Critical events per week (averaged per shift)"},
			"critical_event_hours":       map[string]interface{}{"type": "number", "description": "Optional: duration of one critical event in hours (0 = calibrated default)"},
			"providers":                  map[string]interface{}{"type": "integer", "description": "Providers on shift (must be >= 1)"},
			"shift_hours":                map[string]interface{}{"type": "number", "description": "Shift length in hours (0 = dayshift default 12)"},
			"task_allocations": map[string]interface{}{
				"type":                 "object",
				"description":          "Optional: scheduled focus-task minutes per shift, keyed by task name",
				"additionalProperties": map[string]interface{}{"type": "number"},
			},
		},
		"required": []string{"providers"},
	}
}

func interventionsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional workflow interventions applied before evaluation",
		"properties": map[string]interface{}{
			"protected_time": map[string]interface{}{
				"type":        "object",
				"description": "Reduce interruption rates during a protected block, averaged over the shift",
				"properties": map[string]interface{}{
					"start_hour":       map[string]interface{}{"type": "number", "description": "Hour of shift the block starts (0-based)"},
					"duration_hours":   map[string]interface{}{"type": "number", "description": "Block length in hours"},
					"reduction_factor": map[string]interface{}{"type": "number", "description": "Fraction of interruptions suppressed inside the block (0.0-1.0)"},
				},
				"required": []string{"duration_hours", "reduction_factor"},
			},
			"staff_coverage": map[string]interface{}{
				"type":        "object",
				"description": "Add providers for the whole shift",
				"properties": map[string]interface{}{
					"additional_providers": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"additional_providers"},
			},
			"task_bundling": map[string]interface{}{
				"type":        "object",
				"description": "Scale admission-type handling durations by a grouping efficiency factor",
				"properties": map[string]interface{}{
					"efficiency_factor": map[string]interface{}{"type": "number", "description": "Multiplier on admission minutes (0.0-1.0]"},
				},
				"required": []string{"efficiency_factor"},
			},
		},
	}
}

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name": "evaluate_workflow",
				"description": "Evaluate an ICU workflow configuration: interruption load, focus time remaining, workload score, cognitive load, provider efficiency, burnout score, and risk classifications. " +
					"Deterministic: the same inputs always produce the same outputs. Returns a structured error for non-physical inputs (negative rates, zero providers).",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"inputs": inputsSchema("Workflow input snapshot to evaluate"),
					},
					"required": []string{"inputs"},
				},
			},
			map[string]interface{}{
				"name": "compare_staffing",
				"description": "Evaluate two workflow configurations side by side and report the per-metric delta (variant minus baseline). " +
					"Use this for staffing questions such as closed vs hybrid coverage or adding a provider.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"baseline": inputsSchema("Baseline workflow configuration"),
						"variant":  inputsSchema("Variant workflow configuration to measure against the baseline"),
					},
					"required": []string{"baseline", "variant"},
				},
			},
			map[string]interface{}{
				"name":        "scenario_create",
				"description": "Register a named what-if scenario (inputs plus optional interventions) in this session. Scenarios are session-scoped and not persisted.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":          map[string]interface{}{"type": "string", "description": "Unique scenario name"},
						"description":   map[string]interface{}{"type": "string", "description": "Optional free-text description"},
						"inputs":        inputsSchema("Workflow configuration of the scenario"),
						"interventions": interventionsSchema(),
					},
					"required": []string{"name", "inputs"},
				},
			},
			map[string]interface{}{
				"name":        "scenario_list",
				"description": "List the scenarios registered in this session, sorted by name.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "scenario_run",
				"description": "Run a registered scenario: apply its interventions, evaluate, and return the full metric report. Running never mutates the stored scenario.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string", "description": "Scenario name"},
					},
					"required": []string{"name"},
				},
			},
			map[string]interface{}{
				"name":        "scenario_compare",
				"description": "Run a baseline scenario and one or more variants, reporting each variant's per-metric delta against the baseline.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"baseline": map[string]interface{}{"type": "string", "description": "Baseline scenario name"},
						"variants": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Variant scenario names"},
					},
					"required": []string{"baseline", "variants"},
				},
			},
			map[string]interface{}{
				"name": "forecast_trend",
				"description": "Project workload, burnout, and cognitive load over the coming days with a Monte Carlo cone (per-day P50/P85/P95 bands). " +
					"A fixed seed makes the projection reproducible; zero volatility reproduces the deterministic evaluation.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"inputs":     inputsSchema("Workflow configuration to project forward"),
						"days":       map[string]interface{}{"type": "integer", "description": "Days ahead to project (default 7)"},
						"trials":     map[string]interface{}{"type": "integer", "description": "Monte Carlo trials per day (default 500)"},
						"volatility": map[string]interface{}{"type": "number", "description": "Relative daily input spread (default 0.05)"},
						"seed":       map[string]interface{}{"type": "integer", "description": "Random seed; 0 seeds from the clock"},
					},
					"required": []string{"inputs"},
				},
			},
			map[string]interface{}{
				"name": "get_optimization_advice",
				"description": "Ask the LLM advisor for workflow optimization recommendations based on the computed metrics of a registered scenario or an ad-hoc configuration. " +
					"Requires an ANTHROPIC_API_KEY; every other tool works without one.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"scenario": map[string]interface{}{"type": "string", "description": "Optional: name of a registered scenario to advise on"},
						"inputs":   inputsSchema("Ad-hoc workflow configuration (ignored when 'scenario' is set)"),
					},
				},
			},
			map[string]interface{}{
				"name":        "show_calibration",
				"description": "Show the effective calibration constants (handling minutes, weights, thresholds) behind every evaluation in this session, for reproducibility.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		},
	}
}
