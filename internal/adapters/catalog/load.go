// Package catalog loads the title catalog file and keeps the one canonical
// cleaned snapshot every page reads from.
package catalog

import (
	"context"
	"time"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/pkg/metrics"
)

// Loader produces a fresh catalog snapshot from path.
type Loader func(ctx context.Context, path string) (*model.Table, error)

// Load reads, cleans and materializes the catalog at path.
func Load(ctx context.Context, path string) (*model.Table, error) {
	start := time.Now()
	table, err := load(ctx, path, start)
	if err != nil {
		metrics.RecordCatalogLoadError()
		return nil, err
	}
	info := table.Info()
	metrics.RecordCatalogLoad(table.Len(), info.RowsDropped, info.LoadDurationMillis)
	metrics.RecordDateParseFailures(info.DateParseFailures)
	return table, nil
}

func load(ctx context.Context, path string, start time.Time) (*model.Table, error) {
	raw, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, loadError("clean", path, err)
	}

	cleaned, rep, err := CleanWithReport(raw)
	if err != nil {
		return nil, loadError("clean", path, err)
	}

	info := model.LoadInfo{
		SourcePath:        path,
		RowsRead:          rep.RowsIn,
		RowsDropped:       rep.RowsIn - rep.RowsOut,
		DateParseFailures: rep.DateParseFailures,
		ColumnsDropped:    rep.ColumnsDropped,
		LoadedAt:          time.Now().UTC(),
	}
	info.LoadDurationMillis = float64(time.Since(start).Microseconds()) / 1000
	return Materialize(cleaned, info)
}
