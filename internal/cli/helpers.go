package cli

import (
	"os"
	"path/filepath"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/forest"
	"github.com/giilab/giiscope/pkg/errors"
	"github.com/giilab/giiscope/scenario"
)

func loadTable() (*dataset.Table, error) {
	table, err := dataset.LoadFile(cfg.DataPath)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", cfg.DataPath)
	}
	// Gaps are part of the cleaned table everywhere downstream, including
	// the summary and correlation reports.
	table.Records = features.EngineerGaps(table.Records)
	return table, nil
}

func baselineParams() forest.Params {
	p := forest.DefaultParams()
	p.NumTrees = cfg.NumTrees
	p.MaxDepth = cfg.MaxDepth
	p.Seed = cfg.Seed
	return p
}

func splitter() *forest.KFold {
	return forest.NewKFold(cfg.Folds, true, cfg.Seed)
}

func ensureOutputDir() error {
	return os.MkdirAll(cfg.OutputDir, 0o755)
}

func outPath(name string) string {
	return filepath.Join(cfg.OutputDir, name)
}

func loadBundleAndTable() (*scenario.Predictor, error) {
	table, err := loadTable()
	if err != nil {
		return nil, err
	}
	bundle, err := scenario.Load(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", cfg.ModelPath)
	}
	return scenario.NewPredictor(bundle, table), nil
}

func saveBundle(rf *forest.Regressor, transform *features.ClipLogTransformer) error {
	bundle, err := scenario.NewBundle(rf, transform)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.ModelPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir model dir")
		}
	}
	return bundle.Save(cfg.ModelPath)
}
