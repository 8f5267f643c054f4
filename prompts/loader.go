package prompts

import (
	_ "embed"
)

//go:embed analysis_report.txt
var AnalysisReport string

//go:embed snapshot_context.txt
var SnapshotContext string
