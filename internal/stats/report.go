package stats

import (
	"context"

	"github.com/creatorlimen/wordnaija/internal/model"
	"github.com/creatorlimen/wordnaija/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Results  []model.LevelResult
	Progress model.Progress
}

// BuildReport loads level results and the saved progress.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	results, err := st.ListLevelResults(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	progress, err := st.LoadProgress(ctx, model.Progress{})
	if err != nil {
		return Report{}, err
	}
	return Report{Results: results, Progress: progress}, nil
}
