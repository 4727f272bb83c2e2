package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThatHolds(t *testing.T) {
	assert.NotPanics(t, func() { That(true, "never fires") })
}

func TestThatViolated(t *testing.T) {
	if Enabled {
		assert.PanicsWithValue(t, "varlet: contract violation: slot 1 busy", func() {
			That(false, "slot %d busy", 1)
		})
		return
	}
	assert.NotPanics(t, func() { That(false, "slot %d busy", 1) })
}
