package domain

// AnalysisStatus is the transient progress signal of an in-flight analysis
// request, polled repeatedly from the provider. Each poll supersedes the
// previous value; a nil *AnalysisStatus means the provider has nothing to
// report for the product.
type AnalysisStatus string

const (
	// AnalysisStatusPending indicates the analysis job is queued upstream.
	AnalysisStatusPending AnalysisStatus = "PENDING"
	// AnalysisStatusInProgress indicates the provider is actively analyzing.
	AnalysisStatusInProgress AnalysisStatus = "IN_PROGRESS"
	// AnalysisStatusCompleted indicates the analysis finished and a fresh
	// snapshot can be fetched.
	AnalysisStatusCompleted AnalysisStatus = "COMPLETED"
	// AnalysisStatusNotAnalyzable indicates the provider rejected the product.
	AnalysisStatusNotAnalyzable AnalysisStatus = "NOT_ANALYZABLE"
	// AnalysisStatusStale indicates a previous analysis exists but is outdated.
	AnalysisStatusStale AnalysisStatus = "STALE"
)

// IsAnalyzing reports whether the status describes an analysis that is still
// running. Any other status (or an unknown one) is treated as terminal.
func (s AnalysisStatus) IsAnalyzing() bool {
	return s == AnalysisStatusPending || s == AnalysisStatusInProgress
}
