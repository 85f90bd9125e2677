package hashing

import (
	"math/bits"
	"strings"
	"unicode"
)

const (
	// DefaultShingleSize is the number of characters per shingle.
	DefaultShingleSize = 2
	// DefaultHashSize is the number of fingerprint bits.
	DefaultHashSize = 32
)

// Fingerprinter computes SimHash fingerprints with a fixed shingle size and width.
type Fingerprinter struct {
	shingleSize int
	hashSize    int
}

// NewFingerprinter creates a Fingerprinter. Non-positive arguments fall back to
// the defaults and widths above 64 are clamped.
func NewFingerprinter(shingleSize, hashSize int) Fingerprinter {
	if shingleSize <= 0 {
		shingleSize = DefaultShingleSize
	}
	if hashSize <= 0 {
		hashSize = DefaultHashSize
	}
	if hashSize > 64 {
		hashSize = 64
	}
	return Fingerprinter{shingleSize: shingleSize, hashSize: hashSize}
}

// SimHash fingerprints text with the default shingle size and width.
func SimHash(text string) uint64 {
	return NewFingerprinter(DefaultShingleSize, DefaultHashSize).SimHash(text)
}

// SimHash returns a fingerprint where bit i is set when most shingle hashes have bit i set.
func (it Fingerprinter) SimHash(text string) uint64 {
	counters := make([]int, it.hashSize)
	for _, shingle := range Shingles(text, it.shingleSize) {
		hashed := uint64(HashString(shingle))
		for i := range counters {
			if (hashed>>uint(i))&1 != 0 {
				counters[i]++
			} else {
				counters[i]--
			}
		}
	}

	var fingerprint uint64
	for i, counter := range counters {
		if counter > 0 {
			fingerprint |= 1 << uint(i)
		}
	}
	return fingerprint
}

// Shingles removes every whitespace character from text and returns its
// overlapping fragments of size characters.
func Shingles(text string, size int) []string {
	compact := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text))

	if size <= 0 || len(compact) < size {
		return nil
	}
	shingles := make([]string, 0, len(compact)-size+1)
	for i := 0; i+size <= len(compact); i++ {
		shingles = append(shingles, string(compact[i:i+size]))
	}
	return shingles
}

// Hamming returns the number of differing bits between two fingerprints.
func Hamming(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
