package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"icuflow-mcp/internal/scenario"
	"icuflow-mcp/internal/workflow"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var calibrationFile string

// scenarioFile is the on-disk shape accepted by `evaluate`: one input
// snapshot plus optional interventions.
type scenarioFile struct {
	Name          string                 `yaml:"name"`
	Description   string                 `yaml:"description"`
	Inputs        workflow.Inputs        `yaml:"inputs"`
	Interventions scenario.Interventions `yaml:"interventions"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <scenario.yaml>",
	Short: "Evaluate a workflow scenario file and print the metrics as JSON",
	Long: `One-shot mode for pipelines: reads a YAML scenario file (inputs plus
optional interventions), evaluates it against the effective calibration,
and prints the full metric report as indented JSON on stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading scenario file: %w", err)
		}

		var sf scenarioFile
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return fmt.Errorf("parsing scenario file %s: %w", args[0], err)
		}
		if sf.Name == "" {
			sf.Name = args[0]
		}

		cal := workflow.DefaultCalibration()
		path := calibrationFile
		if path == "" && cfg != nil {
			path = cfg.CalibrationPath
		}
		if path != "" {
			cal, err = workflow.LoadCalibration(path)
			if err != nil {
				return fmt.Errorf("loading calibration %s: %w", path, err)
			}
		}

		mgr := scenario.NewManager(cal)
		if _, err := mgr.Create(sf.Name, sf.Description, sf.Inputs, sf.Interventions); err != nil {
			return err
		}
		report, err := mgr.Run(sf.Name)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&calibrationFile, "calibration", "", "path to a YAML calibration file layered over the defaults")
	rootCmd.AddCommand(evaluateCmd)
}
