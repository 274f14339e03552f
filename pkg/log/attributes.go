package log

// Attribute keys shared by the pipeline stages. Hierarchical names
// ("data.rows", "cv.folds") keep the JSON logs filterable.
const (
	// ComponentKey identifies which package emitted the record.
	// Examples: "dataset.loader", "features.transform", "forest.cv"
	ComponentKey = "component"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "load", "fit", "transform", "evaluate", "tune", "predict"
	OperationKey = "operation"

	// RowsKey is the number of input rows in play.
	RowsKey = "data.rows"

	// EligibleKey is the number of rows eligible for modeling
	// (target plus all nine features present after transformation).
	EligibleKey = "data.eligible"

	// MissingCellsKey counts cells nulled during cleaning, including
	// placeholder markers and unparseable numerics.
	MissingCellsKey = "data.missing_cells"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// SeedKey is the seed driving all randomness in a run.
	SeedKey = "seed"

	// FoldsKey is the cross-validation fold count.
	FoldsKey = "cv.folds"

	// MeanR2Key and StdR2Key are the cross-validated score summary.
	MeanR2Key = "cv.mean_r2"
	StdR2Key  = "cv.std_r2"

	// TrialsKey is the number of hyperparameter search trials.
	TrialsKey = "tune.trials"

	// DurationMsKey is elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)
