package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/LarsBremen/leshan/pkg/log"
)

// FilterOptions holds the textual selection flags.
type FilterOptions struct {
	Output    string
	Endpoint  string
	Category  string
	Object    string
	Instance  string
	TimeStart string
	TimeEnd   string
}

// Build parses the options into a log filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{Endpoint: o.Endpoint}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	if o.Object != "" {
		id, err := parseID("object", o.Object)
		if err != nil {
			return log.Filter{}, err
		}
		filter.ObjectID = &id
	}

	if o.Instance != "" {
		id, err := parseID("instance", o.Instance)
		if err != nil {
			return log.Filter{}, err
		}
		filter.InstanceID = &id
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be read, execute, notify, tick, state, or error)", s)
	}
	return c, nil
}

func parseID(name, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: %w", name, s, err)
	}
	return uint16(v), nil
}

// RunFilter copies the events matching opts into opts.Output and returns how
// many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
