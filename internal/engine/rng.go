package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Seeds is a provably-fair seed pair. The server seed is committed by hash
// before a match and revealed afterwards.
type Seeds struct {
	Server string // ASCII; do NOT hex-decode
	Client string
}

// Stream is an HMAC-SHA256 byte stream keyed by the server seed. Each block
// of 32 bytes is HMAC(server, "client:nonce:block").
type Stream struct {
	seeds  Seeds
	nonce  uint64
	block  uint64
	pos    int
	buffer [32]byte
}

// NewStream creates a stream positioned at cursor bytes into the sequence for
// the given nonce.
func NewStream(seeds Seeds, nonce uint64, cursor uint64) *Stream {
	s := &Stream{
		seeds: seeds,
		nonce: nonce,
		block: cursor / 32,
		pos:   int(cursor % 32),
	}
	s.fill()
	return s
}

// Next returns the next byte from the stream
func (s *Stream) Next() byte {
	if s.pos >= 32 {
		s.block++
		s.pos = 0
		s.fill()
	}

	b := s.buffer[s.pos]
	s.pos++
	return b
}

// Float64 consumes exactly 4 bytes and returns a float in [0, 1).
func (s *Stream) Float64() float64 {
	var b [4]byte
	for i := range b {
		b[i] = s.Next()
	}
	return unitFloat(b)
}

func (s *Stream) fill() {
	h := hmac.New(sha256.New, []byte(s.seeds.Server))
	fmt.Fprintf(h, "%s:%d:%d", s.seeds.Client, s.nonce, s.block)
	copy(s.buffer[:], h.Sum(nil))
}

// unitFloat reads b as base-256 digits after the point, most significant
// first.
func unitFloat(b [4]byte) float64 {
	f, scale := 0.0, 1.0
	for _, d := range b {
		scale /= 256
		f += float64(d) * scale
	}
	return f
}

// Floats returns the first count floats of the stream for nonce, starting
// cursor bytes in. Replays use it to recompute what a live Stream produced.
func Floats(seeds Seeds, nonce uint64, cursor uint64, count int) []float64 {
	s := NewStream(seeds, nonce, cursor)
	out := make([]float64, count)
	for i := range out {
		out[i] = s.Float64()
	}
	return out
}

// HashServerSeed returns the hex SHA-256 commitment of a server seed, or ""
// for an empty seed.
func HashServerSeed(serverSeed string) string {
	if serverSeed == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(hash[:])
}
