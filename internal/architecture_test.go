package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	core := archunit.Packages("core", []string{".../internal/hue/...", ".../internal/config/...", ".../internal/models/..."})
	cli := archunit.Packages("cli", []string{".../cmd/...", ".../internal/lights/..."})

	// Rule: the bridge client core must not depend on the command layer
	if err := core.ShouldNotReferLayers(cli); err != nil {
		t.Errorf("Architecture violation: core depends on the command layer: %v", err)
	}
}
