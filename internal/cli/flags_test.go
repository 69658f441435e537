package cli

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyTypeFlag(t *testing.T) {
	f := dependencyTypeFlag{value: domain.FinishToStart}
	assert.Equal(t, "FS", f.String())

	require.NoError(t, f.Set("ff"))
	assert.Equal(t, domain.FinishToFinish, f.value)

	err := f.Set("XS")
	assert.ErrorIs(t, err, domain.ErrInvalidDependencyType)
	assert.Equal(t, domain.FinishToFinish, f.value, "a bad value leaves the flag unchanged")
}

func TestGranularityFlag(t *testing.T) {
	var f granularityFlag
	assert.Equal(t, domain.GranularityMonth, f.or(domain.GranularityMonth))

	require.NoError(t, f.Set("Week"))
	assert.Equal(t, domain.GranularityWeek, f.or(domain.GranularityMonth))

	assert.Error(t, f.Set("day"))
}
