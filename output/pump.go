// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"time"
)

// Renderer produces one block per call.
type Renderer interface {
	Render() error
}

// Pump calls r.Render once per interval of wall-clock time until ctx is
// done. When it falls behind it renders the missed blocks back to back, so
// the output length tracks elapsed time. It returns nil on cancellation
// and the first Render error otherwise.
func Pump(ctx context.Context, interval time.Duration, r Renderer) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	var rendered int64

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			due := int64(now.Sub(start) / interval)
			for ; rendered < due; rendered++ {
				if err := r.Render(); err != nil {
					return err
				}
			}
		}
	}
}
