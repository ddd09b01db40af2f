package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) (*BoltLedger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := OpenBoltLedger(path)
	require.NoError(t, err)
	return l, path
}

func TestBoltLedger_MarkAndUsed(t *testing.T) {
	l, _ := openTestLedger(t)
	defer l.Close()

	h := makeHash(0x01)

	used, err := l.Used(h)
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, l.Mark(h))

	used, err = l.Used(h)
	require.NoError(t, err)
	assert.True(t, used)
}

func TestBoltLedger_DuplicateMark(t *testing.T) {
	l, _ := openTestLedger(t)
	defer l.Close()

	h := makeHash(0x02)
	require.NoError(t, l.Mark(h))
	assert.ErrorIs(t, l.Mark(h), ErrDuplicateMetadata)
}

func TestBoltLedger_PersistsAcrossReopen(t *testing.T) {
	l, path := openTestLedger(t)
	h := makeHash(0x03)
	require.NoError(t, l.Mark(h))
	require.NoError(t, l.Close())

	reopened, err := OpenBoltLedger(path)
	require.NoError(t, err)
	defer reopened.Close()

	used, err := reopened.Used(h)
	require.NoError(t, err)
	assert.True(t, used)

	// The redemption record survives restart; a second mark must still fail.
	assert.ErrorIs(t, reopened.Mark(h), ErrDuplicateMetadata)

	count, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
