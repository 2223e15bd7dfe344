package mcp

import (
	"context"
	"fmt"

	"icuflow-mcp/internal/forecast"
	"icuflow-mcp/internal/scenario"
	"icuflow-mcp/internal/workflow"
)

func (s *Server) handleEvaluateWorkflow(args map[string]interface{}) (interface{}, error) {
	in, err := decodeInputs(args["inputs"])
	if err != nil {
		return nil, err
	}
	out, err := workflow.Evaluate(in, s.cal)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type staffingComparison struct {
	Baseline workflow.Outputs `json:"baseline"`
	Variant  workflow.Outputs `json:"variant"`
	Delta    workflow.Delta   `json:"delta"`
}

func (s *Server) handleCompareStaffing(args map[string]interface{}) (interface{}, error) {
	baseIn, err := decodeInputs(args["baseline"])
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	varIn, err := decodeInputs(args["variant"])
	if err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}

	baseOut, err := workflow.Evaluate(baseIn, s.cal)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	varOut, err := workflow.Evaluate(varIn, s.cal)
	if err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}

	return staffingComparison{
		Baseline: baseOut,
		Variant:  varOut,
		Delta:    workflow.Compare(baseOut, varOut),
	}, nil
}

func (s *Server) handleScenarioCreate(args map[string]interface{}) (interface{}, error) {
	name := asString(args["name"])
	description := asString(args["description"])

	in, err := decodeInputs(args["inputs"])
	if err != nil {
		return nil, err
	}

	var iv scenario.Interventions
	if raw, ok := args["interventions"]; ok && raw != nil {
		if err := decodeArg(raw, &iv); err != nil {
			return nil, fmt.Errorf("%w: malformed interventions: %v", workflow.ErrInvalidInput, err)
		}
	}

	return s.scenarios.Create(name, description, in, iv)
}

func (s *Server) handleScenarioList() (interface{}, error) {
	return map[string]interface{}{"scenarios": s.scenarios.List()}, nil
}

func (s *Server) handleScenarioRun(args map[string]interface{}) (interface{}, error) {
	return s.scenarios.Run(asString(args["name"]))
}

func (s *Server) handleScenarioCompare(args map[string]interface{}) (interface{}, error) {
	baseline := asString(args["baseline"])
	variants := asStringSlice(args["variants"])
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: at least one variant scenario is required", workflow.ErrInvalidInput)
	}
	return s.scenarios.Compare(baseline, variants...)
}

func (s *Server) handleForecastTrend(args map[string]interface{}) (interface{}, error) {
	in, err := decodeInputs(args["inputs"])
	if err != nil {
		return nil, err
	}

	volatility := 0.05
	if s.cfg != nil && s.cfg.ForecastVolatility > 0 {
		volatility = s.cfg.ForecastVolatility
	}
	if raw, ok := args["volatility"]; ok {
		volatility = asFloat(raw)
	}

	cfg := forecast.Config{
		Days:       asInt(args["days"]),
		Trials:     asInt(args["trials"]),
		Volatility: volatility,
		Seed:       int64(asInt(args["seed"])),
	}

	projections, err := forecast.NewEngine(s.cal, cfg).Project(in)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"projections": projections}, nil
}

func (s *Server) handleOptimizationAdvice(args map[string]interface{}) (interface{}, error) {
	if !s.advisor.Enabled() {
		return nil, fmt.Errorf("optimization advice is unavailable: no ANTHROPIC_API_KEY configured")
	}

	name := asString(args["scenario"])
	var in workflow.Inputs

	if name != "" {
		sc, ok := s.scenarios.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		in = sc.Inputs
	} else {
		name = "current"
		decoded, err := decodeInputs(args["inputs"])
		if err != nil {
			return nil, err
		}
		in = decoded
	}

	out, err := workflow.Evaluate(in, s.cal)
	if err != nil {
		return nil, err
	}

	advice, usage, err := s.advisor.Advise(context.Background(), name, in, out)
	s.usage.Add(usage)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"scenario":      name,
		"advice":        advice,
		"metrics":       out,
		"usage":         usage,
		"session_usage": s.usage,
	}, nil
}

func (s *Server) handleShowCalibration() (interface{}, error) {
	return map[string]interface{}{
		"calibration": s.cal,
		"scenarios":   len(s.scenarios.List()),
	}, nil
}
