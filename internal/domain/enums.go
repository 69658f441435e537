package domain

import (
	"fmt"
	"strings"
)

// DependencyType is the closed set of link kinds between two activities.
type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
)

// DependencyTypes lists every valid dependency type in display order.
var DependencyTypes = []DependencyType{FinishToStart, StartToStart, FinishToFinish}

// ParseDependencyType accepts FS, SS or FF in any case.
func ParseDependencyType(s string) (DependencyType, error) {
	switch t := DependencyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case FinishToStart, StartToStart, FinishToFinish:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (expected FS, SS or FF)", ErrInvalidDependencyType, s)
	}
}

// Label returns the long form, e.g. "finish-to-start".
func (t DependencyType) Label() string {
	switch t {
	case FinishToStart:
		return "finish-to-start"
	case StartToStart:
		return "start-to-start"
	case FinishToFinish:
		return "finish-to-finish"
	default:
		return "unknown"
	}
}

// Granularity is the calendar unit used to generate timeline columns.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity accepts "week" or "month". An empty string yields week.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GranularityWeek, nil
	case GranularityWeek, GranularityMonth:
		return g, nil
	default:
		return "", fmt.Errorf("invalid zoom level %q (expected week or month)", s)
	}
}

// OrDefault returns week for the zero value.
func (g Granularity) OrDefault() Granularity {
	if g == "" {
		return GranularityWeek
	}
	return g
}

// Toggle flips between week and month.
func (g Granularity) Toggle() Granularity {
	if g.OrDefault() == GranularityWeek {
		return GranularityMonth
	}
	return GranularityWeek
}
