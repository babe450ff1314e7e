package sysinfo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalMemoryGB(t *testing.T) {
	gb, err := TotalMemoryGB(context.Background())
	require.NoError(t, err)
	assert.Greater(t, gb, 0.0)
}

func TestMemoryBudgetGB(t *testing.T) {
	assert.Greater(t, MemoryBudgetGB(context.Background()), 0.0)
}
