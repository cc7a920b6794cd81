package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/readstat/internal/model"
	"github.com/verte-zerg/readstat/internal/store"
)

func TestBuildHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "readstat.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		snap := model.Snapshot{
			RecordedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Path:       "essay.md",
			Mode:       "document",
			Metrics:    model.Metrics{Words: 10 * (i + 1), TotalWords: 10 * (i + 1)},
		}
		id, err := st.InsertSnapshot(ctx, snap)
		if err != nil {
			t.Fatalf("insert snapshot: %v", err)
		}
		ids = append(ids, id)
	}

	history, err := BuildHistory(ctx, st, model.HistoryFilter{Path: "essay.md"}, 2)
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(history.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(history.Snapshots))
	}
	if history.Snapshots[0].ID != ids[1] || history.Snapshots[1].ID != ids[2] {
		t.Fatalf("unexpected snapshot ids: %+v", history.Snapshots)
	}
	if history.Paths["essay.md"] != 3 {
		t.Fatalf("expected 3 snapshots for path, got %v", history.Paths)
	}

	all, err := BuildHistory(ctx, st, model.HistoryFilter{}, 0)
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(all.Snapshots) != 3 {
		t.Fatalf("expected all snapshots, got %d", len(all.Snapshots))
	}
}
