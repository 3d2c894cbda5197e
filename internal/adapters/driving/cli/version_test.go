package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	setupTestServices(t)
	orig := version
	t.Cleanup(func() { SetVersion(orig) })

	SetVersion("1.2.3")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "taskd version 1.2.3\n", out)
}

func TestVersionCmd_SkipsSetup(t *testing.T) {
	assert.Equal(t, "true", versionCmd.Annotations[annotationNoSetup])
}
