package domain

import "errors"

var (
	// ErrInvalidDateRange indicates a start date after the end date.
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// ErrSelfDependency indicates a dependency from an activity to itself.
	ErrSelfDependency = errors.New("a dependency must link two different activities")

	// ErrInvalidDependencyType indicates a type outside FS, SS and FF.
	ErrInvalidDependencyType = errors.New("invalid dependency type")

	// ErrInvalidDate indicates a value that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")
)
