package report

import (
	"fmt"
	"reflect"

	"github.com/okian/flixdash/internal/domain/model"
	"github.com/okian/flixdash/internal/domain/pages"
)

// Dataset is the printable part of the dataset page.
type Dataset struct {
	Heading string      `json:"heading"`
	Count   int         `json:"count"`
	Rows    []pages.Row `json:"rows"`
}

// Bundle holds the computed or fetched pages. Pages that were not
// requested stay nil.
type Bundle struct {
	Dataset       *Dataset
	EDA           *pages.EDAPage
	Visualization *pages.VisualizationPage
	Recency       *pages.RecencyPage
}

// Compute builds every page from a catalog snapshot.
func Compute(t *model.Table) *Bundle {
	ds := pages.Dataset(t)
	eda := pages.EDA(t)
	viz := pages.Visualization(t)
	rec := pages.Recency(t)
	return &Bundle{
		Dataset:       &Dataset{Heading: ds.Heading, Count: ds.Count, Rows: ds.Window(0, ds.Count)},
		EDA:           &eda,
		Visualization: &viz,
		Recency:       &rec,
	}
}

// Compare lists the differences between two bundles on the given pages.
// The dataset page is compared by row count only, since a remote window
// holds a subset of the rows.
func Compare(local, remote *Bundle, names []string) []string {
	var diffs []string
	for _, name := range names {
		switch name {
		case pages.NameDataset:
			if local.Dataset == nil || remote.Dataset == nil {
				continue
			}
			if local.Dataset.Count != remote.Dataset.Count {
				diffs = append(diffs, fmt.Sprintf("%s: count %d != %d", name, local.Dataset.Count, remote.Dataset.Count))
			}
		case pages.NameEDA:
			if !reflect.DeepEqual(local.EDA, remote.EDA) {
				diffs = append(diffs, name+": aggregates differ")
			}
		case pages.NameVisualization:
			if !reflect.DeepEqual(local.Visualization, remote.Visualization) {
				diffs = append(diffs, name+": charts differ")
			}
		case pages.NameRecency:
			if !reflect.DeepEqual(local.Recency, remote.Recency) {
				diffs = append(diffs, name+": window differs")
			}
		}
	}
	return diffs
}
