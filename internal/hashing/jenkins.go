// Package hashing provides the Jenkins lookup2 hash and the SimHash
// fingerprint built on top of it.
package hashing

import "encoding/binary"

// golden is the golden ratio constant the state words start from.
const golden uint32 = 0x9e3779b9

const blockSize = 12

// state is the three-word accumulator of a single Jenkins hash computation.
type state struct {
	a, b, c uint32
}

// mix is the reversible mixing step applied after every block and once at the end.
func (s *state) mix() {
	s.a -= s.b
	s.a -= s.c
	s.a ^= s.c >> 13
	s.b -= s.c
	s.b -= s.a
	s.b ^= s.a << 8
	s.c -= s.a
	s.c -= s.b
	s.c ^= s.b >> 13
	s.a -= s.b
	s.a -= s.c
	s.a ^= s.c >> 12
	s.b -= s.c
	s.b -= s.a
	s.b ^= s.a << 16
	s.c -= s.a
	s.c -= s.b
	s.c ^= s.b >> 5
	s.a -= s.b
	s.a -= s.c
	s.a ^= s.c >> 3
	s.b -= s.c
	s.b -= s.a
	s.b ^= s.a << 10
	s.c -= s.a
	s.c -= s.b
	s.c ^= s.b >> 15
}

// Hash computes the 32-bit Jenkins (lookup2) hash of buffer with the given seed.
// Words are read little-endian so results do not depend on the host.
func Hash(buffer []byte, seed uint32) uint32 {
	s := state{a: golden, b: golden, c: seed}
	length := len(buffer)

	rest := buffer
	for len(rest) >= blockSize {
		s.a += binary.LittleEndian.Uint32(rest[0:4])
		s.b += binary.LittleEndian.Uint32(rest[4:8])
		s.c += binary.LittleEndian.Uint32(rest[8:12])
		s.mix()
		rest = rest[blockSize:]
	}

	s.c += uint32(length) //nolint:gosec // lookup2 folds the length modulo 2^32

	// the lowest byte of c is reserved for the length
	switch len(rest) {
	case 11:
		s.c += uint32(rest[10]) << 24
		fallthrough
	case 10:
		s.c += uint32(rest[9]) << 16
		fallthrough
	case 9:
		s.c += uint32(rest[8]) << 8
		fallthrough
	case 8:
		s.b += uint32(rest[7]) << 24
		fallthrough
	case 7:
		s.b += uint32(rest[6]) << 16
		fallthrough
	case 6:
		s.b += uint32(rest[5]) << 8
		fallthrough
	case 5:
		s.b += uint32(rest[4])
		fallthrough
	case 4:
		s.a += uint32(rest[3]) << 24
		fallthrough
	case 3:
		s.a += uint32(rest[2]) << 16
		fallthrough
	case 2:
		s.a += uint32(rest[1]) << 8
		fallthrough
	case 1:
		s.a += uint32(rest[0])
	}

	s.mix()
	return s.c
}

// HashString hashes the UTF-8 bytes of text with a zero seed.
func HashString(text string) uint32 {
	return Hash([]byte(text), 0)
}
