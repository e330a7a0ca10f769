// prepctl is the operator CLI: it builds and parses canonical dataset paths
// and derives inference configurations offline, without a running service.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/forecast-dataset-prep/internal/datastore"
	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
)

var rootCmd = &cobra.Command{
	Use:   "prepctl",
	Short: "Dataset addressing and inference config derivation tools",
}

var buildPathCmd = &cobra.Command{
	Use:   "build-path",
	Short: "Build the canonical storage path for a dataset",
	RunE:  runBuildPath,
}

var parsePathCmd = &cobra.Command{
	Use:   "parse-path <path>",
	Short: "Decode a canonical storage path into its dataset address",
	Args:  cobra.ExactArgs(1),
	RunE:  runParsePath,
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive an inference config from a training config",
	RunE:  runDerive,
}

var (
	modelName    string
	modelConfig  string
	dataKind     string
	member       int
	bboxFlag     []float64
	resFlag      []float64
	unitFlag     string
	analysisTime string

	trainingPath     string
	outputPath       string
	forecastDuration time.Duration
	timeDimensions   []string
	overwriteInputs  []string
	splitPolicyFlag  string
)

func init() {
	buildPathCmd.Flags().StringVar(&modelName, "model-name", "", "model name (required)")
	buildPathCmd.Flags().StringVar(&modelConfig, "model-config", "", "model configuration name (required)")
	buildPathCmd.Flags().StringVar(&dataKind, "data-kind", "analysis", "data kind of the artifact")
	buildPathCmd.Flags().IntVar(&member, "member", 0, "ensemble member index")
	buildPathCmd.Flags().Float64SliceVar(&bboxFlag, "bbox", nil, "bounding box as lon_min,lat_min,lon_max,lat_max (required)")
	buildPathCmd.Flags().Float64SliceVar(&resFlag, "resolution", nil, "grid resolution as dx,dy (required)")
	buildPathCmd.Flags().StringVar(&unitFlag, "unit", "deg", "resolution unit: m, km, or deg")
	buildPathCmd.Flags().StringVar(&analysisTime, "analysis-time", "", "analysis time, RFC 3339 (required)")

	deriveCmd.Flags().StringVar(&analysisTime, "analysis-time", "", "analysis time, RFC 3339 (required)")
	deriveCmd.Flags().StringVar(&trainingPath, "training-config", "", "path to the training config YAML (required)")
	deriveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the derived config here instead of stdout")
	deriveCmd.Flags().DurationVar(&forecastDuration, "forecast-duration", 48*time.Hour, "forecast length from analysis time")
	deriveCmd.Flags().StringSliceVar(&timeDimensions, "time-dimensions", []string{"analysis_time", "elapsed_forecast_duration"}, "dimensions replacing the time axis, sampling dimension first")
	deriveCmd.Flags().StringArrayVar(&overwriteInputs, "overwrite-input", nil, "input path override as name=path (repeatable)")
	deriveCmd.Flags().StringVar(&splitPolicyFlag, "split-policy", "three-way", "split policy: three-way or single-test")

	rootCmd.AddCommand(buildPathCmd, parsePathCmd, deriveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addressFromFlags() (domain.DatasetAddress, error) {
	if len(bboxFlag) != 4 {
		return domain.DatasetAddress{}, fmt.Errorf("--bbox requires exactly 4 values, got %d", len(bboxFlag))
	}
	if len(resFlag) != 2 {
		return domain.DatasetAddress{}, fmt.Errorf("--resolution requires exactly 2 values, got %d", len(resFlag))
	}
	at, err := time.Parse(time.RFC3339, analysisTime)
	if err != nil {
		return domain.DatasetAddress{}, fmt.Errorf("parse --analysis-time: %w", err)
	}
	return domain.DatasetAddress{
		ModelName:   modelName,
		ModelConfig: modelConfig,
		BBox: domain.BoundingBox{
			LonMin: bboxFlag[0], LatMin: bboxFlag[1],
			LonMax: bboxFlag[2], LatMax: bboxFlag[3],
		},
		Resolution: domain.Resolution{
			LonResolution: resFlag[0],
			LatResolution: resFlag[1],
			Unit:          domain.Unit(unitFlag),
		},
		AnalysisTime: at,
		DataKind:     dataKind,
		Member:       member,
	}, nil
}

func runBuildPath(cmd *cobra.Command, _ []string) error {
	addr, err := addressFromFlags()
	if err != nil {
		return err
	}
	path, err := domain.BuildPath(addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runParsePath(cmd *cobra.Command, args []string) error {
	addr, err := domain.ParsePath(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(addr)
}

func runDerive(cmd *cobra.Command, _ []string) error {
	if trainingPath == "" {
		return fmt.Errorf("--training-config is required")
	}
	at, err := time.Parse(time.RFC3339, analysisTime)
	if err != nil {
		return fmt.Errorf("parse --analysis-time: %w", err)
	}
	policy, err := datastore.ParseSplitPolicy(splitPolicyFlag)
	if err != nil {
		return err
	}

	overrides := make(map[string]string, len(overwriteInputs))
	for _, kv := range overwriteInputs {
		name, path, ok := strings.Cut(kv, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("--overwrite-input %q must be name=path", kv)
		}
		overrides[name] = path
	}

	training, err := datastore.LoadFile(trainingPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	inference, err := datastore.DeriveInferenceConfig(training, datastore.DeriveParams{
		AnalysisTime:        at,
		ForecastDuration:    forecastDuration,
		TimeDimensions:      timeDimensions,
		OverwriteInputPaths: overrides,
		SplitPolicy:         policy,
	}, logger)
	if err != nil {
		return err
	}

	if outputPath != "" {
		return datastore.WriteFile(inference, outputPath)
	}
	data, err := datastore.Marshal(inference)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
