package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Under `go test` stdout is a pipe, so capability detection must degrade
// to non-interactive output.
func TestDetectNonTTY(t *testing.T) {
	caps := Detect()

	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
	assert.Equal(t, 0, caps.Width)
}
