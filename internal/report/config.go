package report

import "time"

// Config holds the report run configuration.
type Config struct {
	DataPath string        // catalog CSV computed locally
	BaseURL  string        // running dashboard; empty means local only
	Page     string        // page slug or "all"
	Limit    int           // dataset rows printed
	Workers  int           // concurrent page fetches
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // log every fetch
}

// Stats holds run statistics.
type Stats struct {
	PagesRendered int
	PagesFetched  int
	PagesFailed   int
	Mismatches    int
	StartTime     time.Time
	Duration      time.Duration
}

// Defaults.
const (
	DefaultLimit   = 20
	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second
	AllPages       = "all"
)
