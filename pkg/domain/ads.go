package domain

// Ad is a single sponsored-product entry returned by the provider for a
// product page. Ads are keyed by the product they were requested for and are
// independent of analysis status, which makes them cacheable.
type Ad struct {
	// AID is the provider's identifier for the placement, echoed back in
	// ad-event reports.
	AID string `json:"aid"`
	// Name is the advertised product title.
	Name string `json:"name"`
	// URL links to the advertised product.
	URL string `json:"url"`
	// ImageURL points at the product image.
	ImageURL string `json:"imageUrl"`
	// Price and Currency describe the advertised price.
	Price    string `json:"price"`
	Currency string `json:"currency"`
	// Grade is the reliability grade of the advertised product's reviews.
	Grade Grade `json:"grade"`
	// AdjustedRating is the provider-adjusted star rating of the advertised
	// product. It drives placement selection.
	AdjustedRating float64 `json:"adjustedRating"`
}

// Ad event names reported back to the provider for sponsored placements.
const (
	// AdEventImpression is sent once an ad has been visible long enough to
	// count as seen.
	AdEventImpression = "trusted_deals_impression"
	// AdEventPlacement is sent when an ad is surfaced in the element list.
	AdEventPlacement = "trusted_deals_placement"
	// AdEventClick is sent when the user opens an ad.
	AdEventClick = "trusted_deals_link_clicked"

	// AdEventSourceFirefox identifies this client to the provider's
	// attribution pipeline.
	AdEventSourceFirefox = "firefox_mobile"
)
