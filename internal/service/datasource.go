package service

import "fmt"

// DataSource selects, once at startup, whether demo features serve
// live database rows or the built-in seeded fixtures. Services hold
// the chosen variant instead of falling back ad hoc per call.
type DataSource string

const (
	DataSourceLive   DataSource = "LIVE"
	DataSourceSeeded DataSource = "SEEDED"
)

// ParseDataSource validates a configured data source value.
func ParseDataSource(value string) (DataSource, error) {
	switch DataSource(value) {
	case DataSourceLive:
		return DataSourceLive, nil
	case DataSourceSeeded:
		return DataSourceSeeded, nil
	default:
		return "", fmt.Errorf("unknown data source %q (expected LIVE or SEEDED)", value)
	}
}
