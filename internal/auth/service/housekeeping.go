package service

import (
	"context"
	"time"

	"github.com/wukonglabs/wukong/internal/auth/store"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

const DefaultSweepInterval = 5 * time.Minute

// Housekeeper periodically purges expired grants and deactivates expired
// device sessions. Correctness never depends on the sweep; reads already
// treat expired rows as absent. Session rows are kept as sign-in history,
// only their active flag is cleared.
type Housekeeper struct {
	Grants   store.GrantStore
	Sessions store.SessionStore
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewHousekeeper(grants store.GrantStore, sessions store.SessionStore) *Housekeeper {
	return &Housekeeper{
		Grants:   grants,
		Sessions: sessions,
		Interval: DefaultSweepInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop to end it.
func (h *Housekeeper) Start(ctx context.Context) {
	go func() {
		defer close(h.doneCh)

		ticker := time.NewTicker(h.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				h.Sweep(ctx)
			case <-h.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it.
func (h *Housekeeper) Stop() {
	close(h.stopCh)
	<-h.doneCh
}

// Sweep runs one purge pass. Failures are logged and the next tick tries
// again.
func (h *Housekeeper) Sweep(ctx context.Context) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	grants, err := h.Grants.DeleteExpiredGrants(ctx, now)
	if err != nil {
		log.Error("grant sweep failed", "err", err)
	}

	sessions, err := h.Sessions.DeactivateExpiredDeviceSessions(ctx, now)
	if err != nil {
		log.Error("session sweep failed", "err", err)
	}

	if grants > 0 || sessions > 0 {
		log.Info("housekeeping sweep", "grants_purged", grants, "sessions_deactivated", sessions)
	}
}
