package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"tourism-engine/internal/estimator"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// row is one label/value line of table output.
type row struct {
	label string
	value string
}

var printer = message.NewPrinter(language.English)

// render writes v in the requested format. rows is only used for tables and
// may be nil for values that have no table form.
func render(w io.Writer, format string, v interface{}, rows []row) error {
	switch format {
	case formatJSON, "":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return eris.Wrap(err, "output: encode json")
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return enc.Close()
	case formatTable:
		if rows == nil {
			return eris.New("output: table format not supported here")
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range rows {
			_, _ = fmt.Fprintf(tw, "%s:\t%s\n", r.label, r.value)
		}
		return tw.Flush()
	default:
		return eris.Errorf("output: unknown format %q (json, yaml, table)", format)
	}
}

func count(n int) string {
	return printer.Sprintf("%d", n)
}

func factor(f float64) string {
	return printer.Sprintf("%.2fx", f)
}

func soccerRows(res estimator.SoccerResult) []row {
	return []row{
		{"Baseline annual attendance", count(res.Scenario.BaselineAnnualAttendance)},
		{"World cup effect", res.Scenario.WorldCupEffect},
		{"World cup factor", factor(res.WorldCupFactor)},
		{"Projected total attendance", count(res.ProjectedTotalAttendance)},
		{"Out-of-prefecture tourists", count(res.EstimatedOutOfPrefectureTourists)},
	}
}

func seasonalRows(res estimator.SeasonalResult) []row {
	return []row{
		{"Baseline visitors", count(res.Scenario.BaselineVisitors)},
		{"Quarter", res.Scenario.Quarter},
		{"Promotion campaign", fmt.Sprint(res.Scenario.PromotionCampaign)},
		{"New attraction opens", fmt.Sprint(res.Scenario.NewAttractionOpens)},
		{"Seasonal factor", factor(res.Coefficients.SeasonalFactor)},
		{"Promotion factor", factor(res.Coefficients.PromotionFactor)},
		{"Attraction factor", factor(res.Coefficients.AttractionFactor)},
		{"Estimated total visitors", count(res.EstimatedTotalVisitors)},
	}
}
