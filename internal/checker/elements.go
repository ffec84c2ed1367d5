package checker

import (
	"reviewd/pkg/domain"
	"reviewd/pkg/serrors"
	"sort"
)

// Elements derives the ordered display-element list for a state. It is a pure
// function: no side effects, deterministic for the same inputs, callable as
// often as the caller re-renders.
//
// Rules are evaluated first-match-wins in a fixed priority order. Not being
// opted in (or an explicit onboarding state) short-circuits everything else.
func Elements(state State, flags Flags) []domain.ElementTag {
	if !flags.OptedIn || state.Kind == StateOnboarding {
		return []domain.ElementTag{domain.ElementOnboarding}
	}

	switch state.Kind {
	case StateLoading:
		return []domain.ElementTag{domain.ElementLoading}
	case StateError:
		head := domain.ElementGenericError
		if serrors.IsNoConnection(state.Cause) {
			head = domain.ElementNoConnectionError
		}

		return withFooter(head)
	case StateLoaded:
		return loadedElements(state.Loaded, flags)
	default:
		// StateOnboarding is handled above; anything else renders as loading.
		return []domain.ElementTag{domain.ElementLoading}
	}
}

// loadedElements applies the decision table to a loaded state's product-data
// flags, in priority order.
func loadedElements(data LoadedData, flags Flags) []domain.ElementTag {
	a := data.Analysis
	analyzing := data.Status != nil && data.Status.IsAnalyzing()

	switch {
	case a == nil:
		return withFooter(domain.ElementGenericError)

	case a.InfoComingSoon && flags.ComingSoon:
		return withFooter(domain.ElementInfoComingSoon)

	case a.ReportInStockVisible && flags.ReportInStock:
		return withFooter(domain.ElementReportInStock)

	case a.NotSupported:
		return withFooter(domain.ElementNotSupported)

	case a.NotAnalyzed:
		if analyzing {
			return withFooter(domain.ElementAnalysisProgress)
		}

		return withFooter(domain.ElementNoAnalysis)

	case a.NotEnoughReviews:
		// only show the dedicated card once the user actually asked for an
		// analysis; before that the product looks like any unanalyzed one
		if data.AnalyzeAttempts > 0 {
			return withFooter(domain.ElementNotEnoughReviews)
		}
		if analyzing {
			return withFooter(domain.ElementAnalysisProgress)
		}

		return withFooter(domain.ElementNoAnalysis)

	case a.NeedsAnalysis:
		head := domain.ElementNeedsAnalysis
		if analyzing {
			head = domain.ElementAnalysisProgress
		}

		return analyzedElements(data, flags, head)

	default:
		return analyzedElements(data, flags)
	}
}

// analyzedElements renders the healthy-product layout: optional lead cards,
// then reliability, rating and highlights (each only when the snapshot has
// that datum), the quality footer, an optional qualifying ad, and settings.
func analyzedElements(data LoadedData, flags Flags, lead ...domain.ElementTag) []domain.ElementTag {
	out := append([]domain.ElementTag{}, lead...)

	a := data.Analysis
	if a.Grade != nil {
		out = append(out, domain.ElementReliability)
	}
	if a.AdjustedRating != nil {
		out = append(out, domain.ElementAdjustedRating)
	}
	if len(a.Highlights) > 0 {
		out = append(out, domain.ElementHighlights)
	}

	out = append(out, domain.ElementQuality)
	if flags.AdsEnabled && SelectAd(data.Ads, a) != nil {
		out = append(out, domain.ElementAd)
	}

	return append(out, domain.ElementSettings)
}

// withFooter returns the standard single-message layout: the given card
// followed by the quality and settings cards.
func withFooter(head domain.ElementTag) []domain.ElementTag {
	return []domain.ElementTag{head, domain.ElementQuality, domain.ElementSettings}
}

// SelectAd picks the sponsored entry to display: sort descending by adjusted
// rating, take the first entry whose rating meets or exceeds the product's
// own adjusted rating. A product without a rating counts as 0, so any ad
// qualifies. Returns nil when no entry qualifies.
func SelectAd(ads []domain.Ad, analysis *domain.ProductAnalysis) *domain.Ad {
	if len(ads) == 0 {
		return nil
	}

	sorted := make([]domain.Ad, len(ads))
	copy(sorted, ads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AdjustedRating > sorted[j].AdjustedRating
	})

	threshold := analysis.RatingOrZero()
	for i := range sorted {
		if sorted[i].AdjustedRating >= threshold {
			return &sorted[i]
		}
	}

	return nil
}
