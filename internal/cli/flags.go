package cli

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/pflag"
)

// dependencyTypeFlag parses FS, SS or FF at flag-parse time.
type dependencyTypeFlag struct {
	value domain.DependencyType
}

var _ pflag.Value = (*dependencyTypeFlag)(nil)

func (f *dependencyTypeFlag) String() string { return string(f.value) }
func (f *dependencyTypeFlag) Type() string   { return "FS|SS|FF" }

func (f *dependencyTypeFlag) Set(s string) error {
	t, err := domain.ParseDependencyType(s)
	if err != nil {
		return err
	}
	f.value = t
	return nil
}

// granularityFlag parses week or month. Unset means the configured zoom.
type granularityFlag struct {
	value domain.Granularity
}

var _ pflag.Value = (*granularityFlag)(nil)

func (f *granularityFlag) String() string { return string(f.value) }
func (f *granularityFlag) Type() string   { return "week|month" }

func (f *granularityFlag) Set(s string) error {
	g, err := domain.ParseGranularity(s)
	if err != nil {
		return err
	}
	f.value = g
	return nil
}

// or returns the parsed value, or fallback when the flag was not given.
func (f *granularityFlag) or(fallback domain.Granularity) domain.Granularity {
	if f.value == "" {
		return fallback
	}
	return f.value
}
