package domain

// ElementTag names one display element in the ordered list a client renders
// for a review-checker session. The list is derived from the session state;
// tags are stable identifiers, not presentation markup.
type ElementTag string

const (
	ElementLoading           ElementTag = "loading"
	ElementOnboarding        ElementTag = "onboarding"
	ElementGenericError      ElementTag = "generic-error"
	ElementNoConnectionError ElementTag = "no-connection-error"
	ElementInfoComingSoon    ElementTag = "info-coming-soon"
	ElementReportInStock     ElementTag = "report-in-stock"
	ElementNotSupported      ElementTag = "not-supported"
	ElementAnalysisProgress  ElementTag = "analysis-progress"
	ElementNoAnalysis        ElementTag = "no-analysis"
	ElementNotEnoughReviews  ElementTag = "not-enough-reviews"
	ElementNeedsAnalysis     ElementTag = "needs-analysis"
	ElementReliability       ElementTag = "reliability"
	ElementAdjustedRating    ElementTag = "adjusted-rating"
	ElementHighlights        ElementTag = "highlights"
	ElementQuality           ElementTag = "quality-determination"
	ElementAd                ElementTag = "sponsored-ad"
	ElementSettings          ElementTag = "settings"
)
