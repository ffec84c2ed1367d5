// Package prefs stores per-session boolean preference flags such as
// review-checker opt-in and sponsored-ad visibility.
//
//go:generate mockgen -package mockprefs -source=prefs.go -destination=mock/mockprefs.go *
package prefs

import "context"

// Preference keys. Sessions read these at creation time and write them when
// the user flips a setting.
const (
	// KeyOptedIn records whether the user has accepted the review-checker
	// onboarding. Defaults to false.
	KeyOptedIn = "reviewchecker.opted-in"
	// KeyAdsEnabled records whether sponsored ads may be shown. Defaults to
	// true once opted in.
	KeyAdsEnabled = "reviewchecker.ads-enabled"
)

// Store persists boolean preference flags by key.
type Store interface {
	// Bool returns the stored value for key, or def when the key was never set.
	Bool(ctx context.Context, key string, def bool) (bool, error)
	// SetBool stores the value for key.
	SetBool(ctx context.Context, key string, value bool) error
}
