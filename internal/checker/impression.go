package checker

import (
	"reviewd/pkg/domain"
	"reviewd/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// AdVisibilityChanged reacts to the client's visibility signal for the
// displayed ad. Becoming visible arms a single-shot timer; if the ad stays
// visible for the configured delay, an impression event is filed. Becoming
// hidden before the timer fires disarms it. Each ad produces at most one
// impression per session.
func (c *Controller) AdVisibilityChanged(visible bool) {
	if !visible {
		c.stopImpressionTimer()

		return
	}

	st := c.State()
	if st.Kind != StateLoaded {
		return
	}
	ad := SelectAd(st.Loaded.Ads, st.Loaded.Analysis)
	if ad == nil {
		return
	}

	c.impMu.Lock()
	defer c.impMu.Unlock()

	if c.impressed[ad.AID] || c.impTimer != nil {
		return
	}

	aid := ad.AID
	c.impTimer = time.AfterFunc(c.options.ImpressionDelay, func() {
		c.fireImpression(aid)
	})
}

// fireImpression files the debounced impression event exactly once per ad.
func (c *Controller) fireImpression(aid string) {
	c.impMu.Lock()
	c.impTimer = nil
	if c.impressed[aid] {
		c.impMu.Unlock()

		return
	}
	c.impressed[aid] = true
	c.impMu.Unlock()

	// the session context outlives the HTTP request that signaled visibility
	if _, err := c.deps.Reporter.AdEvent(c.base, c.product, domain.AdEventImpression, aid); err != nil {
		logger.Warn(c.base, "could not file impression report", zap.Error(err))
	}
}

func (c *Controller) stopImpressionTimer() {
	c.impMu.Lock()
	defer c.impMu.Unlock()

	if c.impTimer != nil {
		c.impTimer.Stop()
		c.impTimer = nil
	}
}
