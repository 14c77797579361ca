package valgrind

import (
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/grindlog/internal/types"
)

func decodeString(t *testing.T, doc string) (*types.Collection, error) {
	t.Helper()

	return Decode(strings.NewReader(doc))
}

func TestDecodeFixture(t *testing.T) {
	t.Parallel()

	file, err := os.Open("../../../tests/testdata/memcheck.xml")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	coll, err := Decode(file)
	require.NoError(t, err)
	require.Equal(t, 4, coll.Len())

	errs := slices.Collect(coll.Errors())

	uniques := make([]uint64, 0, len(errs))
	for _, e := range errs {
		uniques = append(uniques, e.Unique())
	}

	assert.Equal(t, []uint64{1, 4, 2, 3}, uniques)

	first := errs[0]
	assert.Equal(t, "InvalidRead", first.Kind())
	assert.Equal(t, "Invalid read of size 4", first.What())
	assert.Equal(t, uint64(1), first.ThreadID())

	frames := slices.Collect(first.Frames())
	require.Len(t, frames, 2)
	assert.Equal(t, types.Frame{
		IP: 0x10916D, Object: "/tmp/prog", Function: "main", Directory: "/src", File: "main.c", Line: 12,
	}, frames[0])
	assert.Equal(t, types.Frame{IP: 0x48D8D8F, Object: "/lib/libc.so.6", Function: "__libc_start_main"}, frames[1])

	uninit := errs[1]
	assert.Equal(t, "Uninitialised value was created by a heap allocation", uninit.AuxWhat())
	assert.Equal(t, 3, uninit.Depth())

	lost := errs[3]
	extra, ok := lost.Extra()
	require.True(t, ok)
	assert.Equal(t, uint32(64), extra.LeakedBytes)
	assert.Equal(t, uint32(4), extra.LeakedBlocks)
	assert.Equal(t, "64 bytes in 4 blocks are definitely lost in loss record 2 of 2", extra.Text)

	count, ok := coll.Occurrences(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), count)

	_, ok = coll.Occurrences(2)
	assert.False(t, ok)
}

func TestDecodeDecimalAndMissingFields(t *testing.T) {
	t.Parallel()

	coll, err := decodeString(t, `<valgrindoutput>
<error><unique>12</unique><kind>InvalidFree</kind><stack><frame><fn>free</fn></frame></stack></error>
</valgrindoutput>`)
	require.NoError(t, err)

	errs := slices.Collect(coll.Errors())
	require.Len(t, errs, 1)
	assert.Equal(t, uint64(12), errs[0].Unique())
	assert.Equal(t, uint64(0), errs[0].ThreadID())

	_, ok := errs[0].Extra()
	assert.False(t, ok)
}

func TestDecodeEmptyReport(t *testing.T) {
	t.Parallel()

	coll, err := decodeString(t, `<?xml version="1.0"?><valgrindoutput><protocolversion>4</protocolversion></valgrindoutput>`)
	require.NoError(t, err)
	assert.Equal(t, 0, coll.Len())
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		doc  string
		want error
	}{
		"empty input": {doc: "", want: errMalformed},
		"truncated":   {doc: "<valgrindoutput><error><unique>0x1", want: errMalformed},
		"wrong root":  {doc: "<html><body/></html>", want: errNotAReport},
		"bad unique":  {doc: "<valgrindoutput><error><unique>zz</unique></error></valgrindoutput>", want: errBadNumber},
		"line overflow": {
			doc:  "<valgrindoutput><error><unique>1</unique><stack><frame><line>4294967296</line></frame></stack></error></valgrindoutput>",
			want: errBadNumber,
		},
		"underscore digits": {
			doc:  "<valgrindoutput><error><unique>1</unique><tid>1_0</tid></error></valgrindoutput>",
			want: errBadNumber,
		},
		"binary literal": {
			doc:  "<valgrindoutput><error><unique>0b11</unique></error></valgrindoutput>",
			want: errBadNumber,
		},
		"octal prefix": {
			doc:  "<valgrindoutput><error><unique>1</unique><stack><frame><line>0O17</line></frame></stack></error></valgrindoutput>",
			want: errBadNumber,
		},
		"bad errorcount": {
			doc:  "<valgrindoutput><errorcounts><pair><count>-1</count><unique>0x1</unique></pair></errorcounts></valgrindoutput>",
			want: errBadNumber,
		},
		"duplicate unique": {
			doc:  "<valgrindoutput><error><unique>0x1</unique></error><error><unique>1</unique></error></valgrindoutput>",
			want: types.ErrDuplicateUnique,
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			coll, err := decodeString(t, tc.doc)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, coll)
		})
	}
}
