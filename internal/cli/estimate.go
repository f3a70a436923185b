package cli

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourism-engine/internal/estimator"
	"tourism-engine/internal/handler"
)

var (
	soccerBaseline    int
	soccerBaselineRef string
	soccerScenario    string
	soccerFormat      string

	seasonalBaseline    int
	seasonalBaselineRef string
	seasonalQuarter     int
	seasonalPromotion   bool
	seasonalAttraction  bool
	seasonalFormat      string

	scenariosFormat string
)

var soccerCmd = &cobra.Command{
	Use:   "soccer",
	Short: "Estimate out-of-prefecture soccer tourists",
	Long: `Projects annual league attendance under a world cup effect scenario and the
share of visitors travelling in from outside the prefecture.

Examples:
  tourism-engine soccer --baseline 820000 --scenario modest
  tourism-engine soccer --baseline-ref jleague_urawa_omiya --scenario optimistic --format table`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		baseline, err := resolveBaseline(cmd.Context(), soccerBaseline, soccerBaselineRef)
		if err != nil {
			return err
		}

		res, err := estimator.SoccerTourists(baseline, soccerScenario)
		if err != nil {
			return eris.Wrap(err, "soccer")
		}
		zap.L().Debug("soccer estimate", zap.Int("baseline", baseline), zap.String("scenario", soccerScenario))

		return render(cmd.OutOrStdout(), soccerFormat, res, soccerRows(res))
	},
}

var seasonalCmd = &cobra.Command{
	Use:   "seasonal",
	Short: "Estimate quarterly visitors",
	Long: `Projects quarterly visitors from a baseline with seasonality, promotion and
new attraction factors. Quarters outside 1-4 use a neutral factor.

Examples:
  tourism-engine seasonal --baseline 2936600 --quarter 2 --promotion
  tourism-engine seasonal --baseline-ref saitama_2025_q1 --quarter 3 --attraction --format yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		baseline, err := resolveBaseline(cmd.Context(), seasonalBaseline, seasonalBaselineRef)
		if err != nil {
			return err
		}

		if _, ok := estimator.SeasonalFactor(seasonalQuarter); !ok {
			zap.L().Warn("quarter not in 1-4, seasonal factor 1.0 applied", zap.Int("quarter", seasonalQuarter))
		}

		res := estimator.SeasonalTourists(baseline, seasonalQuarter, seasonalPromotion, seasonalAttraction)
		return render(cmd.OutOrStdout(), seasonalFormat, res, seasonalRows(res))
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List estimators and their coefficient tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return render(cmd.OutOrStdout(), scenariosFormat, handler.Catalog(), nil)
	},
}

func init() {
	f := soccerCmd.Flags()
	f.IntVar(&soccerBaseline, "baseline", 0, "baseline annual attendance")
	f.StringVar(&soccerBaselineRef, "baseline-ref", "", "named baseline to use instead of --baseline")
	f.StringVar(&soccerScenario, "scenario", estimator.EffectNone, "world cup effect: none, modest or optimistic")
	f.StringVar(&soccerFormat, "format", formatJSON, "output format: json, yaml or table")

	f = seasonalCmd.Flags()
	f.IntVar(&seasonalBaseline, "baseline", 0, "baseline visitors")
	f.StringVar(&seasonalBaselineRef, "baseline-ref", "", "named baseline to use instead of --baseline")
	f.IntVar(&seasonalQuarter, "quarter", 1, "quarter to project (1-4)")
	f.BoolVar(&seasonalPromotion, "promotion", false, "a large promotion campaign runs")
	f.BoolVar(&seasonalAttraction, "attraction", false, "a major new attraction opens")
	f.StringVar(&seasonalFormat, "format", formatJSON, "output format: json, yaml or table")

	soccerCmd.MarkFlagsMutuallyExclusive("baseline", "baseline-ref")
	seasonalCmd.MarkFlagsMutuallyExclusive("baseline", "baseline-ref")

	scenariosCmd.Flags().StringVar(&scenariosFormat, "format", formatJSON, "output format: json or yaml")

	rootCmd.AddCommand(soccerCmd, seasonalCmd, scenariosCmd)
}

func resolveBaseline(ctx context.Context, literal int, ref string) (int, error) {
	if ref == "" {
		return literal, nil
	}
	v, err := newBaselineRegistry().Resolve(ctx, ref)
	if err != nil {
		return 0, eris.Wrap(err, "resolve baseline")
	}
	return v, nil
}
