// Package giiscope provides country-level gender-inequality analytics:
// loading and cleaning the Gender Inequality Index (GII) dataset, engineering
// gap and clipped-log features, fitting and cross-validating a random-forest
// regressor, and answering what-if scenario queries against a trained model
// bundle.
//
// # Pipeline
//
// Data flows through four strictly ordered stages:
//
//  1. dataset: ingest the raw delimited table, normalize headers, coerce
//     numeric cells, and turn placeholder markers into explicit missing
//     values (never zeros, never dropped rows).
//  2. features: derive the education and labour-force gaps, then compute the
//     1st/99th percentile clip bounds and the ln(1+x) transform over the
//     full distribution and assemble the feature matrix from eligible rows.
//  3. forest: fit a bootstrap-bagged ensemble of variance-minimizing trees,
//     evaluate it with seed-shuffled k-fold cross-validation (R² against
//     each held-out fold's own mean), and optionally run a randomized
//     hyperparameter search.
//  4. scenario: apply user deltas to a baseline country's raw indicators,
//     re-derive the gaps, re-apply the stored training-time clip bounds and
//     log transform, and run ensemble inference.
//
// The training-time clip bounds travel with the ensemble inside a single
// serialized bundle so that training and serving can never apply different
// transforms to the same feature.
//
// # Quick Start
//
//	table, err := dataset.Load(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, tf, err := features.BuildMatrix(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rf := forest.NewRegressor(forest.DefaultParams())
//	if err := rf.Fit(m.X, m.Y); err != nil {
//	    log.Fatal(err)
//	}
//	bundle, err := scenario.NewBundle(rf, tf)
//
// The model is deliberately a low-fidelity scenario-exploration aid, not a
// forecasting engine; on this dataset the baseline cross-validated R² is
// negative, and that is reported as-is.
package giiscope
