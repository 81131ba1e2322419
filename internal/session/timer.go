package session

import "time"

// matchTimer drives the cosmetic elapsed-match clock. It ticks until
// stopped; it has no protocol role, so a missed tick is harmless.
type matchTimer struct {
	ticker *time.Ticker
	stopCh chan struct{}
}

func newMatchTimer(interval time.Duration, tick func(now time.Time)) *matchTimer {
	t := &matchTimer{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.stopCh:
				return
			case now := <-t.ticker.C:
				tick(now)
			}
		}
	}()
	return t
}

func (t *matchTimer) stop() {
	t.ticker.Stop()
	close(t.stopCh)
}
