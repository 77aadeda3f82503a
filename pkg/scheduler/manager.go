package scheduler

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Manager runs a monitor per configured station, each on its own
// goroutine, and blocks until every one has stopped.
type Manager struct {
	Monitors []*StationMonitor
}

func NewManager(monitors []*StationMonitor) *Manager {
	return &Manager{Monitors: monitors}
}

func (m *Manager) Run(ctx context.Context) {
	p := pool.New()

	for _, monitor := range m.Monitors {
		monitor := monitor
		p.Go(func() {
			monitor.Run(ctx)
		})
	}

	p.Wait()
}
