package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSimulation(t *testing.T) {
	report := RunSimulation()

	require.NotEmpty(t, report.Checks)
	for _, check := range report.Checks {
		assert.True(t, check.Passed, "check %q: expected %s, got %s", check.Name, check.Expected, check.Actual)
	}
	assert.True(t, report.Passed)
	assert.NotEmpty(t, report.GeneratedAt)
}
