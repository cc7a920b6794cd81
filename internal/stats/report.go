// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/store"
)

// History contains the snapshots selected for rendering.
type History struct {
	Snapshots []model.Snapshot
	Paths     map[string]int
}

// BuildHistory loads snapshots matching filter and keeps the last n (all when n <= 0).
func BuildHistory(ctx context.Context, st *store.Store, filter model.HistoryFilter, last int) (History, error) {
	snapshots, err := st.ListSnapshots(ctx, filter)
	if err != nil {
		return History{}, err
	}
	if last > 0 && len(snapshots) > last {
		snapshots = snapshots[len(snapshots)-last:]
	}
	paths, err := st.ListPaths(ctx)
	if err != nil {
		return History{}, err
	}
	return History{Snapshots: snapshots, Paths: paths}, nil
}
