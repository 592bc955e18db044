package metastore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeVars(t *testing.T) {
	out := EscapeVars([]string{
		"ID_FS_TYPE=ext4",
		"ID_FS_LABEL=My Disk",
		"EMPTY=",
	})
	require.Equal(t, []string{
		"ID_FS_TYPE='ext4'",
		"ID_FS_LABEL='My Disk'",
		"EMPTY=''",
	}, out)
}

func TestEscapeVars_NoSeparatorPassthrough(t *testing.T) {
	out := EscapeVars([]string{"not a pair"})
	require.Equal(t, []string{"not a pair"}, out)
}

func TestEscapeVars_SingleQuotesNotEscaped(t *testing.T) {
	// Documented limitation: embedded single quotes pass through.
	out := EscapeVars([]string{"LABEL=it's"})
	require.Equal(t, []string{"LABEL='it's'"}, out)
}
