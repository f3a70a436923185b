package cli

import (
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourism-engine/internal/engine"
	"tourism-engine/internal/model"
)

var runFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process an estimate request file",
	Long: `Runs every instruction of an estimate request through the engine and prints
the response. Use --file - to read the request from stdin. Exits non-zero
when the calculation outcome is FAILURE.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		body, err := readRequest(cmd.InOrStdin(), runFile)
		if err != nil {
			return err
		}

		var req model.EstimateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return eris.Wrap(err, "run: decode request")
		}
		if len(req.EstimateInstructions.Estimates) == 0 {
			return eris.New("run: at least one estimate instruction is required")
		}

		resp, err := engine.New(newBaselineRegistry()).Process(cmd.Context(), &req)
		if err != nil {
			return err
		}

		if err := render(cmd.OutOrStdout(), formatJSON, resp, nil); err != nil {
			return err
		}

		if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
			zap.L().Warn("calculation failed", zap.Int("messages", len(resp.CalculationResult.Messages)))
			return eris.Errorf("run: calculation outcome %s", resp.CalculationMetadata.CalculationOutcome)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "request file path, or - for stdin")
	_ = runCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(runCmd)
}

func readRequest(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return b, eris.Wrap(err, "run: read stdin")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "run: read %s", path)
	}
	return b, nil
}
