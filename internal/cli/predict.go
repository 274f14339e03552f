package cli

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/server"
)

var (
	predictCountry string
	predictDeltas  []string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a country's GII under indicator adjustments",
	Example: `  giiscope predict --country Rwanda
  giiscope predict --country Rwanda --delta f_secondary_educ=+20 --delta seats_parliament_pct=5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deltas, err := parseDeltas(predictDeltas)
		if err != nil {
			return err
		}

		p, err := loadBundleAndTable()
		if err != nil {
			return err
		}
		res, err := p.Predict(predictCountry, deltas)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(server.FromResult(res))
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictCountry, "country", "", "country name as it appears in the table")
	predictCmd.Flags().StringArrayVar(&predictDeltas, "delta", nil, "indicator adjustment, name=value (repeatable)")
	_ = predictCmd.MarkFlagRequired("country")
	rootCmd.AddCommand(predictCmd)
}

func parseDeltas(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	deltas := make(map[string]float64, len(specs))
	for _, spec := range specs {
		name, raw, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, errors.Newf("malformed --delta %q, want name=value", spec)
		}
		v, err := strconv.ParseFloat(strings.TrimPrefix(raw, "+"), 64)
		if err != nil {
			return nil, errors.Newf("malformed --delta value %q", raw)
		}
		deltas[name] = v
	}
	return deltas, nil
}
