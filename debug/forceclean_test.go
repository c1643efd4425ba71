package debug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureForced() string {
	var sbb strings.Builder
	WriteStack(&sbb, true)
	return sbb.String()
}

// No build constraint on this file: forceClean must trim frames and file
// paths under the debug tag too.
func TestWriteStackForceClean(t *testing.T) {
	out := captureForced()

	require.Contains(t, out, "TestWriteStackForceClean")
	require.NotContains(t, out, "testing.tRunner")
	require.NotContains(t, out, "/")
}
