package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

const metainfo = "d8:announce3:url4:infod6:lengthi5e4:name1:xee"

func TestInfoHash(t *testing.T) {
	tests := []struct {
		algo Algorithm
		want string
	}{
		{SHA1, "6e009507d8cfcc2e20e0fbf08e9ad7fd21c2974d"},
		{SHA256, "22b0738c4d38a3717d47f76d7e082e3634f8377bbc48b1b7e27e005a096b9be6"},
		{BLAKE2b, "25bc243200c350495fa11448a793801e9db73b13b93656fca9629458a5bbb646"},
	}
	for _, tt := range tests {
		t.Run(tt.algo.String(), func(t *testing.T) {
			sum, err := InfoHash([]byte(metainfo), tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(sum))
		})
	}
}

func TestInfoHashMissing(t *testing.T) {
	_, err := InfoHash([]byte("d8:announce3:urle"), SHA1)
	assert.ErrorIs(t, err, wire.ErrKeyNotFound)
}

func TestSumIsCanonical(t *testing.T) {
	// Unsorted source bytes hash like their canonical form.
	v, err := wire.Unmarshal([]byte("d1:bli1ei2ee1:ai0ee"))
	require.NoError(t, err)

	sum, err := Sum(v, SHA1)
	require.NoError(t, err)
	assert.Equal(t, "8615853320359e3fe880c8ad5fd5d15938851935", hex.EncodeToString(sum))
}

func TestSumEqualTrees(t *testing.T) {
	a := bencode.D("x", bencode.L(bencode.Int(1)), "y", bencode.Str("z"))
	b := bencode.D("y", bencode.Str("z"), "x", bencode.L(bencode.Int(1)))

	for _, algo := range Algorithms() {
		sa, err := Sum(a, algo)
		require.NoError(t, err)
		sb, err := Sum(b, algo)
		require.NoError(t, err)
		assert.Equal(t, sa, sb, algo.String())
	}

	sc, err := Sum(bencode.D("x", bencode.L(bencode.Int(2))), SHA256)
	require.NoError(t, err)
	sa, err := Sum(a, SHA256)
	require.NoError(t, err)
	assert.NotEqual(t, sa, sc)
}

func TestSumPlaceholder(t *testing.T) {
	d := bencode.D()
	d.GetOrInsertDefault("k")
	_, err := Sum(d, SHA1)
	assert.ErrorIs(t, err, wire.ErrNilValue)
}

func TestNewSizes(t *testing.T) {
	sizes := map[Algorithm]int{SHA1: 20, SHA256: 32, BLAKE2b: 32, BLAKE3: 32}
	for algo, size := range sizes {
		h, err := New(algo)
		require.NoError(t, err)
		assert.Equal(t, size, h.Size(), algo.String())
	}
}

func TestEmptyInputVectors(t *testing.T) {
	tests := map[Algorithm]string{
		BLAKE2b: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		BLAKE3:  "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
	}
	for algo, want := range tests {
		h, err := New(algo)
		require.NoError(t, err)
		assert.Equal(t, want, hex.EncodeToString(h.Sum(nil)), algo.String())
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algo := range Algorithms() {
		got, err := ParseAlgorithm(algo.String())
		require.NoError(t, err)
		assert.Equal(t, algo, got)
	}

	got, err := ParseAlgorithm(" SHA-256 ")
	require.NoError(t, err)
	assert.Equal(t, SHA256, got)

	_, err = ParseAlgorithm("md5")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	_, err = New(Algorithm(9))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Equal(t, "Algorithm(9)", Algorithm(9).String())
}
