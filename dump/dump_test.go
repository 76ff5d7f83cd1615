package dump

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/datumkit/data"
	"github.com/joshuapare/datumkit/internal/format"
	"github.com/joshuapare/datumkit/internal/testutil"
)

func Test_Open_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}

func Test_Open_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := Open(path)
	require.ErrorContains(t, err, "empty snapshot")
}

func Test_ScanArrays_FindsBlocks(t *testing.T) {
	players := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "players",
		Capacity:  16,
		DatumSize: 0x10,
		Live: map[int]testutil.Slot{
			0: {Salt: 1, Payload: []byte("chief")},
			1: {Salt: 2, Payload: []byte("arbiter")},
			5: {Salt: 7},
		},
	})
	objects := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "objects",
		Capacity:  8,
		DatumSize: 0x08,
		Live:      map[int]testutil.Slot{3: {Salt: 9}},
	})

	path := testutil.WriteSnapshot(t, players, objects)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.Equal(t, "players", views[0].Name())
	require.Equal(t, 16, views[0].Capacity())
	require.Equal(t, 3, views[0].ActiveCount())

	require.Equal(t, "objects", views[1].Name())
	require.Equal(t, 8, views[1].Capacity())
	require.Equal(t, 1, views[1].ActiveCount())
	require.Greater(t, views[1].Offset(), views[0].Offset())
}

func Test_ScanArrays_SkipsStraySignatures(t *testing.T) {
	block := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "effects",
		Capacity:  4,
		DatumSize: 0x08,
	})

	// A bare signature over junk: parse fails, scan must move on.
	stray := make([]byte, 0x60)
	format.PutU32(stray, format.OffArraySignature, format.SigDataArray)
	format.PutI32(stray, format.OffArrayMaxCount, -5)

	path := testutil.WriteSnapshot(t, stray, block)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "effects", views[0].Name())
}

func Test_ScanArrays_SkipsHostileAlignment(t *testing.T) {
	// A header whose Alignment byte would collapse the stride to zero
	// makes its claimed TotalSize internally consistent with a block far
	// smaller than its datums. The scanner must reject it outright;
	// accepting it lets Get slice past the end of the block.
	hdr := &format.ArrayHeader{
		Name:       "hostile",
		MaxCount:   4,
		DatumSize:  0x1000,
		Alignment:  200,
		IsValid:    true,
		HeaderSize: format.ArrayHeaderSize,
		TotalSize:  int32(format.ArrayHeaderSize + format.BitArraySize(4)),
	}
	block := make([]byte, hdr.TotalSize)
	copy(block, format.EncodeArrayHeader(hdr))
	// Mark every slot live so a walk over the bogus geometry would have
	// to touch datum bytes that do not exist.
	for i := 0; i < 4; i++ {
		format.SetBit(block[format.ArrayHeaderSize:], i)
	}

	good := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "players",
		Capacity:  4,
		DatumSize: 0x08,
		Live:      map[int]testutil.Slot{0: {Salt: 7}},
	})

	path := testutil.WriteSnapshot(t, block, good)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Len(t, views, 1, "hostile block must be skipped")
	require.Equal(t, "players", views[0].Name())

	// No handle resolves anywhere near the hostile geometry.
	_, ok := views[0].Get(data.NewHandle(7, 0))
	require.True(t, ok)
}

func Test_ScanArrays_SkipsTruncatedBlock(t *testing.T) {
	block := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "objects",
		Capacity:  16,
		DatumSize: 0x20,
		Live:      map[int]testutil.Slot{9: {Salt: 3}},
	})

	// Chop the tail off: the header's TotalSize now points past EOF.
	truncated := block[:len(block)-0x40]
	path := testutil.WriteSnapshot(t, truncated)

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Empty(t, views, "block extending past EOF must be skipped")
}

func Test_ScanArrays_Progress(t *testing.T) {
	block := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "ui widgets",
		Capacity:  2,
		DatumSize: 0x04,
	})
	path := testutil.WriteSnapshot(t, block)

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var last, total int64
	views, err := s.ScanArrays(func(done, tot int64) {
		last, total = done, tot
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, s.Size(), total)
	require.Equal(t, total, last, "scan must report completion")
}

func Test_ArrayView_Get(t *testing.T) {
	block := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "players",
		Capacity:  8,
		DatumSize: 0x10,
		Live: map[int]testutil.Slot{
			2: {Salt: 5, Payload: []byte("payload!")},
		},
	})
	path := testutil.WriteSnapshot(t, block)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]

	// Valid handle: correct salt and index.
	p, ok := v.Get(data.NewHandle(5, 2))
	require.True(t, ok)
	require.Equal(t, 0x10-format.SaltSize, len(p))
	require.Equal(t, []byte("payload!"), p[:8])

	_, ok = v.Get(data.Null)
	require.False(t, ok)
	_, ok = v.Get(data.NewHandle(5, 100)) // out of range
	require.False(t, ok)
	_, ok = v.Get(data.NewHandle(4, 2)) // stale salt
	require.False(t, ok)
	_, ok = v.Get(data.NewHandle(0, 2)) // zero salt never matches
	require.False(t, ok)
	_, ok = v.Get(data.NewHandle(5, 3)) // empty slot
	require.False(t, ok)
}

func Test_SlotIterator_WalksLiveSlots(t *testing.T) {
	block := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "objects",
		Capacity:  40, // spans two bit-array words
		DatumSize: 0x08,
		Live: map[int]testutil.Slot{
			1:  {Salt: 3},
			7:  {Salt: 4},
			33: {Salt: 5},
		},
	})
	path := testutil.WriteSnapshot(t, block)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	views, err := s.Arrays()
	require.NoError(t, err)
	v := views[0]

	it := v.Slots()
	var indices []int
	for {
		slot, err := it.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		indices = append(indices, slot.Index)

		// Every yielded handle resolves through Get.
		_, ok := v.Get(slot.Handle)
		require.True(t, ok)
	}
	require.Equal(t, []int{1, 7, 33}, indices)

	// Exhausted iterators stay exhausted.
	_, err = it.Next()
	require.Equal(t, io.EOF, err)
}

func Test_Pools_And_Caches(t *testing.T) {
	pool := testutil.BuildPoolHeader(t, "effects pool", 0x4000, 0x1000)
	cache := testutil.BuildCacheHeader(t, "geometry cache")
	array := testutil.BuildArrayBlock(t, testutil.ArraySpec{
		Name:      "effects",
		Capacity:  4,
		DatumSize: 0x08,
	})

	path := testutil.WriteSnapshot(t, pool, array, cache)
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	pools := s.Pools()
	require.Len(t, pools, 1)
	require.Equal(t, "effects pool", pools[0].Name)
	require.Equal(t, int32(0x4000), pools[0].Size)

	caches := s.Caches()
	require.Len(t, caches, 1)
	require.Equal(t, "geometry cache", caches[0].Name)

	views, err := s.Arrays()
	require.NoError(t, err)
	require.Len(t, views, 1)
}
