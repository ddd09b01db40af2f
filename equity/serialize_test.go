package equity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSnapshot_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		snap *Snapshot
	}{
		{"fresh registry", &Snapshot{
			GroupSize: 3, TotalShares: 275,
			Payees: []Payee{
				{Addresses: makeGroup(1), Shares: 100},
				{Addresses: makeGroup(2), Shares: 75},
				{Addresses: makeGroup(3), Shares: 100},
			},
		}},
		{"mid-life registry", &Snapshot{
			GroupSize: 3, TotalShares: 275, TotalReleased: 998, Held: 2,
			Payees: []Payee{
				{Addresses: makeGroup(1), Shares: 100, Released: 363, Enabled: 2},
				{Addresses: makeGroup(2), Shares: 75, Released: 272},
				{Addresses: makeGroup(3), Shares: 100, Released: 363, Enabled: 1},
			},
		}},
		{"minimum group size", &Snapshot{
			GroupSize: 2, TotalShares: 1,
			Payees: []Payee{
				{Addresses: [][20]byte{makeAddr(0x01), makeAddr(0x02)}, Shares: 1},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := SerializeSnapshot(tt.snap)
			require.NoError(t, err)

			decoded, err := DeserializeSnapshot(data)
			require.NoError(t, err)

			assert.Equal(t, tt.snap.GroupSize, decoded.GroupSize)
			assert.Equal(t, tt.snap.TotalShares, decoded.TotalShares)
			assert.Equal(t, tt.snap.TotalReleased, decoded.TotalReleased)
			assert.Equal(t, tt.snap.Held, decoded.Held)
			require.Len(t, decoded.Payees, len(tt.snap.Payees))
			for i := range tt.snap.Payees {
				assert.Equal(t, tt.snap.Payees[i], decoded.Payees[i])
			}
		})
	}
}

func TestDeserializeSnapshot_Malformed(t *testing.T) {
	valid, err := SerializeSnapshot(&Snapshot{
		GroupSize: 2, TotalShares: 1,
		Payees: []Payee{{Addresses: [][20]byte{makeAddr(0x01), makeAddr(0x02)}, Shares: 1}},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", valid[:snapshotHeaderSize-1]},
		{"truncated payees", valid[:len(valid)-1]},
		{"trailing bytes", append(append([]byte{}, valid...), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeserializeSnapshot(tt.data)
			assert.ErrorIs(t, err, ErrInvalidSnapshotData)
		})
	}
}

func TestSerializeSnapshot_Invalid(t *testing.T) {
	_, err := SerializeSnapshot(nil)
	assert.ErrorIs(t, err, ErrNilParam)

	// Group size below minimum.
	_, err = SerializeSnapshot(&Snapshot{GroupSize: 1, TotalShares: 1})
	assert.ErrorIs(t, err, ErrInvalidSnapshotData)

	// Payee address count disagreeing with the group size.
	_, err = SerializeSnapshot(&Snapshot{
		GroupSize: 3, TotalShares: 1,
		Payees: []Payee{{Addresses: [][20]byte{makeAddr(0x01)}, Shares: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidSnapshotData)
}

func TestSnapshotRestore_PreservesAccounting(t *testing.T) {
	r, _ := threePayees(t)
	r.Receive(makeAddr(0xEE), 1000)
	_, err := r.Release(0)
	require.NoError(t, err)
	require.NoError(t, r.Rotate(makeGroup(2)[0], 0))

	snap := r.Snapshot()

	transport := NewMemTransport()
	restored, err := RestoreRegistry(snap, transport)
	require.NoError(t, err)

	assert.Equal(t, r.TotalShares(), restored.TotalShares())
	assert.Equal(t, r.TotalReleased(), restored.TotalReleased())
	assert.Equal(t, r.Held(), restored.Held())

	enabled, err := restored.EnabledIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 1, enabled)

	// The restored registry keeps accounting exactly where it was: payee 0
	// is fully paid, payee 1 still has its 272 pending.
	_, err = restored.Release(0)
	assert.ErrorIs(t, err, ErrNothingDue)

	got, err := restored.Release(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(272), got)
	assert.Equal(t, uint64(272), transport.BalanceOf(makeGroup(2)[0]))
}

func TestBoltStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.db")
	store, err := OpenBoltStore(path)
	require.NoError(t, err)

	_, err = store.LoadSnapshot()
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	r, _ := threePayees(t)
	r.Receive(makeAddr(0xEE), 1000)
	_, err = r.Release(0)
	require.NoError(t, err)

	require.NoError(t, store.SaveSnapshot(r.Snapshot()))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	snap, err := reopened.LoadSnapshot()
	require.NoError(t, err)

	assert.Equal(t, uint64(275), snap.TotalShares)
	assert.Equal(t, uint64(363), snap.TotalReleased)
	assert.Equal(t, uint64(637), snap.Held)
	require.Len(t, snap.Payees, 3)
	assert.Equal(t, uint64(363), snap.Payees[0].Released)
}
