package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDataCommand(t *testing.T) {
	cmd := newDataCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"import", "export"}, names)
}

func TestDataCommands_ReadOnlyStore(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "import", args: []string{"import", "--dry-run", "snapshot.yml"}},
		{name: "export", args: []string{"export"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useSampleConfig(t)
			_, err := execute(t, newDataCommand(), tt.args...)
			assert.ErrorContains(t, err, "the yaml store is read-only; use --store db")
		})
	}
}

func TestDataImport_RequiresSnapshot(t *testing.T) {
	useSampleConfig(t)

	_, err := execute(t, newDataCommand(), "import")
	assert.ErrorContains(t, err, "accepts 1 arg(s), received 0")
}
