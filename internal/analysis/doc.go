// Package analysis turns the stored reading log back into per-field time
// series and descriptive statistics.
//
// The pipeline is a pure batch computation with no persistence of its own:
//
//	readings := repo.ScanAll(ctx)
//	series := analysis.BuildSeries(readings)
//	summary, err := analysis.Summarize(series)
//	analysis.WriteReport(os.Stdout, summary)
//
// Fields are partitioned at runtime into static curves (a single distinct
// value across the whole history), dynamic numeric curves (full statistics)
// and non-numeric curves (presence only). The partition is a post-hoc
// classification of accumulated data, not a schema property.
//
// Running the pipeline twice over the same log yields identical output.
package analysis
