// Package checker implements the per-session review analysis controller: a
// view-state machine driving a fetch, analyze-status-poll, refetch protocol
// against the upstream review provider, and the derivation of ordered display
// elements from that state.
package checker

import "reviewd/pkg/domain"

// StateKind discriminates the State variants. Exactly one is active at a time.
type StateKind string

const (
	// StateLoading is the initial state and the state during an explicit
	// user-visible fetch.
	StateLoading StateKind = "loading"
	// StateOnboarding is shown while the user has not opted into the feature.
	StateOnboarding StateKind = "onboarding"
	// StateLoaded carries the fetched data, see LoadedData.
	StateLoaded StateKind = "loaded"
	// StateError is entered when the primary analysis fetch fails.
	StateError StateKind = "error"
)

// LoadedData bundles everything a loaded state carries.
type LoadedData struct {
	// Analysis is the product analysis snapshot. It may legitimately be nil
	// when the provider has no analysis for the product yet.
	Analysis *domain.ProductAnalysis
	// Ads is the current sponsored-ads list, possibly empty.
	Ads []domain.Ad
	// Status is the latest polled analysis status, nil when no analysis
	// request is being tracked.
	Status *domain.AnalysisStatus
	// AnalyzeAttempts counts how many times the user asked for an analysis
	// during this session. It only ever increases.
	AnalyzeAttempts int
}

// State is the authoritative view state of a session.
type State struct {
	Kind StateKind
	// Loaded is meaningful only when Kind is StateLoaded.
	Loaded LoadedData
	// Cause is meaningful only when Kind is StateError. It is inspected to
	// distinguish connectivity failures from generic ones.
	Cause error
}

// Flags are the user preference and feature switches that influence element
// derivation but live outside the state machine.
type Flags struct {
	// OptedIn reports whether the user accepted the feature onboarding.
	OptedIn bool
	// AdsEnabled reports whether sponsored ads may be displayed.
	AdsEnabled bool
	// ComingSoon gates the info-coming-soon card.
	ComingSoon bool
	// ReportInStock gates the report-back-in-stock card.
	ReportInStock bool
}
