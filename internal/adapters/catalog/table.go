package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"

	"github.com/okian/flixdash/internal/domain/model"
)

// rowNamespace seeds the name-based row identifiers.
var rowNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/okian/flixdash/catalog/title"))

// RowID derives the identifier of a cleaned row. The same position, type
// and title always give the same id.
func RowID(position int, kind, title string) uuid.UUID {
	return uuid.NewSHA1(rowNamespace, []byte(strconv.Itoa(position)+"|"+kind+"|"+title))
}

// Materialize converts a cleaned frame into an immutable Table.
func Materialize(df dataframe.DataFrame, info model.LoadInfo) (*model.Table, error) {
	if df.Err != nil {
		return nil, loadError("materialize", info.SourcePath, df.Err)
	}
	if err := checkSchema(df); err != nil {
		return nil, loadError("materialize", info.SourcePath, err)
	}

	n := df.Nrow()
	var (
		showIDs  = optionalText(df, ColShowID)
		kinds    = text(df.Col(ColType))
		titles   = text(df.Col(ColTitle))
		director = text(df.Col(ColDirector))
		cast     = text(df.Col(ColCast))
		country  = text(df.Col(ColCountry))
		dates    = text(df.Col(ColDateAdded))
		release  = text(df.Col(ColReleaseYear))
		rating   = text(df.Col(ColRating))
		duration = text(df.Col(ColDuration))
		listedIn = text(df.Col(ColListedIn))
		desc     = optionalText(df, ColDescription)
	)

	rows := make([]model.Title, n)
	for i := 0; i < n; i++ {
		row := model.Title{
			RowID:       RowID(i, kinds[i], titles[i]),
			Position:    i,
			ShowID:      showIDs[i],
			Type:        kinds[i],
			Title:       titles[i],
			Director:    director[i],
			Cast:        cast[i],
			Country:     country[i],
			Rating:      rating[i],
			Duration:    duration[i],
			ListedIn:    listedIn[i],
			Description: desc[i],
		}
		if y, err := strconv.Atoi(strings.TrimSpace(release[i])); err == nil {
			row.ReleaseYear = y
		}
		if dates[i] != "" {
			d, err := time.Parse(DateLayout, dates[i])
			if err != nil {
				return nil, loadError("materialize", info.SourcePath,
					fmt.Errorf("%w: row %d date_added %q is not normalized", ErrMalformed, i, dates[i]))
			}
			row.DateAdded = d
			row.YearAdded = d.Year()
		}
		rows[i] = row
	}
	return model.NewTable(rows, info), nil
}

// text returns the column values with NA as "".
func text(s series.Series) []string {
	out := make([]string, s.Len())
	for i := range out {
		if el := s.Elem(i); !el.IsNA() {
			out[i] = el.String()
		}
	}
	return out
}

// optionalText is text for a column the schema does not require. An absent
// column reads as all "".
func optionalText(df dataframe.DataFrame, name string) []string {
	for _, have := range df.Names() {
		if have == name {
			return text(df.Col(name))
		}
	}
	return make([]string, df.Nrow())
}
