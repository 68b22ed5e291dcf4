package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// nanValues are the raw cell values read as missing: the usual spreadsheet
// and dataframe spellings of a null.
var nanValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// ReadFile reads a Latin-1 encoded CSV into a frame of string columns with
// missing cells marked NA. Header cells left blank are named "Unnamed: N"
// after their 0-based index.
func ReadFile(ctx context.Context, path string) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, loadError("read", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, loadError("read", path, err)
	}
	defer f.Close()

	df, err := ReadFrame(f)
	if err != nil {
		return dataframe.DataFrame{}, loadError("read", path, err)
	}
	return df, nil
}

// ReadFrame is ReadFile over an already opened Latin-1 stream.
func ReadFrame(r io.Reader) (dataframe.DataFrame, error) {
	records, err := readRecords(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) == 1 {
		return emptyFrame(records[0]), nil
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	return df, nil
}

// emptyFrame builds a zero-row frame with the given string columns, which
// LoadRecords refuses to do for a header-only file.
func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		header[i] = name
	}

	width := len(header)
	for i := 1; i < len(records); i++ {
		row := records[i]
		switch {
		case len(row) > width:
			return nil, fmt.Errorf("%w: record %d has %d fields, header has %d", ErrMalformed, i, len(row), width)
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			records[i] = padded
		}
	}
	return records, nil
}
