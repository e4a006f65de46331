// internal/poller/builder.go
package poller

import (
	cfg "github.com/qrcodeshare/qrshare/internal/config"
)

// Build constructs a Poller for the configured follow target.
// followID overrides the configured target when > 0.
func Build(c *cfg.Config, followID int, src CodeSource, errs ErrorHandler) (*Poller, error) {
	if followID <= 0 {
		followID = c.Download.FollowUserID
	}
	return New(
		Config{
			FollowID:    followID,
			MinInterval: c.PollInterval(),
		},
		src,
		errs,
	)
}
