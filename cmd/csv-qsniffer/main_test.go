package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oleg578/csvqsniffer/cmd/csv-qsniffer/commands"
)

func TestDefaultVersionIsSet(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "dev", version)
}

func TestRootCommandBuilds(t *testing.T) {
	t.Parallel()
	cmd := commands.NewDetectCommand()
	assert.Equal(t, "csv-qsniffer [FILE]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
