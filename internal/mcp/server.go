package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"icuflow-mcp/internal/advisor"
	"icuflow-mcp/internal/config"
	"icuflow-mcp/internal/scenario"
	"icuflow-mcp/internal/workflow"

	"github.com/rs/zerolog/log"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state of one evaluation session. Scenarios live in the
// session's Manager only; a new server starts with an empty registry.
type Server struct {
	cfg       *config.AppConfig
	cal       workflow.Calibration
	scenarios *scenario.Manager
	advisor   *advisor.Advisor
	usage     advisor.Usage

	in  io.Reader
	out io.Writer
}

// NewServer creates a server bound to the effective calibration. A
// configured calibration file is layered over the built-in defaults.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	cal := workflow.DefaultCalibration()
	if cfg.CalibrationPath != "" {
		loaded, err := workflow.LoadCalibration(cfg.CalibrationPath)
		if err != nil {
			return nil, fmt.Errorf("loading calibration %s: %w", cfg.CalibrationPath, err)
		}
		cal = loaded
		log.Info().Str("path", cfg.CalibrationPath).Msg("Loaded calibration override")
	}

	return &Server{
		cfg:       cfg,
		cal:       cal,
		scenarios: scenario.NewManager(cal),
		advisor:   advisor.New(cfg.Advisor),
		in:        os.Stdin,
		out:       os.Stdout,
	}, nil
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(s.in)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "icuflow-mcp",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(s.out, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	log.Debug().Str("tool", call.Name).Msg("Tool call")

	var data interface{}
	var err error

	switch call.Name {
	case "evaluate_workflow":
		data, err = s.handleEvaluateWorkflow(call.Arguments)
	case "compare_staffing":
		data, err = s.handleCompareStaffing(call.Arguments)
	case "scenario_create":
		data, err = s.handleScenarioCreate(call.Arguments)
	case "scenario_list":
		data, err = s.handleScenarioList()
	case "scenario_run":
		data, err = s.handleScenarioRun(call.Arguments)
	case "scenario_compare":
		data, err = s.handleScenarioCompare(call.Arguments)
	case "forecast_trend":
		data, err = s.handleForecastTrend(call.Arguments)
	case "get_optimization_advice":
		data, err = s.handleOptimizationAdvice(call.Arguments)
	case "show_calibration":
		data, err = s.handleShowCalibration()
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": errCode(err), "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
