// Package digest hashes value trees and metainfo documents.
//
// Sum hashes the canonical encoding of a tree, so equal trees have equal
// digests regardless of how their source bytes were laid out. InfoHash
// instead hashes the raw bytes of the top-level "info" value exactly as
// they appear in the document, which is what peers compare.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/bencoding/bencoding-go/pkg/bencode"
	"github.com/bencoding/bencoding-go/pkg/wire"
)

// ErrUnknownAlgorithm is returned for an unrecognized algorithm.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// Algorithm identifies a hash function.
type Algorithm uint8

const (
	SHA1 Algorithm = iota + 1
	SHA256
	BLAKE2b
	BLAKE3
)

var algorithmNames = map[Algorithm]string{
	SHA1:    "sha1",
	SHA256:  "sha256",
	BLAKE2b: "blake2b",
	BLAKE3:  "blake3",
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", a)
}

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SHA1, SHA256, BLAKE2b, BLAKE3}
}

// ParseAlgorithm parses an algorithm name, ignoring case. "sha-1",
// "sha-256" and "blake2b-256" are accepted as aliases.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sha1", "sha-1":
		return SHA1, nil
	case "sha256", "sha-256":
		return SHA256, nil
	case "blake2b", "blake2b-256":
		return BLAKE2b, nil
	case "blake3":
		return BLAKE3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// New returns a fresh hash for a. BLAKE2b and BLAKE3 produce 256-bit
// digests.
func New(a Algorithm) (hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}
}

// Sum hashes the canonical encoding of v.
func Sum(v bencode.Value, a Algorithm) ([]byte, error) {
	h, err := New(a)
	if err != nil {
		return nil, err
	}
	if err := wire.NewEncoder(h).Encode(v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return h.Sum(nil), nil
}

// InfoHash hashes the raw "info" value of a metainfo document.
func InfoHash(data []byte, a Algorithm) ([]byte, error) {
	span, err := wire.DictSpan(data, "info")
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	h, err := New(a)
	if err != nil {
		return nil, err
	}
	h.Write(span)
	return h.Sum(nil), nil
}
