package mlkem

import (
	"math/bits"

	"golang.org/x/crypto/sha3"
)

// G is FIPS 203's G: SHA3-512, with the 64-byte output split into two
// 32-byte halves — (rho, sigma) during key generation, (K, r) during
// encapsulation and decapsulation.
func G(data ...[]byte) (rho, sigma [32]byte) {
	h := sha3.New512()
	for _, d := range data {
		h.Write(d)
	}
	var out [64]byte
	h.Sum(out[:0])
	copy(rho[:], out[:32])
	copy(sigma[:], out[32:])
	return rho, sigma
}

// H is SHA3-256, used to hash the encoded encapsulation key, binding it
// into the shared-secret derivation.
func H(data ...[]byte) [32]byte {
	h := sha3.New256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// J is SHAKE256 with a 32-byte output, used to derive the implicit-rejection
// shared secret K-bar = J(z || c) when decapsulation's re-encryption check
// fails.
func J(data ...[]byte) [32]byte {
	h := sha3.NewShake256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	h.Read(out[:])
	return out
}

// sampleNTT generates a uniformly random polynomial directly in NTT
// domain (plain coefficients in [0, q), not Montgomery form) via
// rejection sampling over SHAKE128 output.
// Implements FIPS 203 Algorithm 7 (SampleNTT).
func sampleNTT(rho []byte, i, j byte) nttElement {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{j, i})

	var buf [168]byte // SHAKE128 rate
	var a nttElement
	k := 0

	for k < n {
		h.Read(buf[:])
		for off := 0; off+3 <= len(buf) && k < n; off += 3 {
			d1 := uint32(buf[off]) | (uint32(buf[off+1])&0x0f)<<8
			d2 := uint32(buf[off+1])>>4 | uint32(buf[off+2])<<4
			if d1 < q {
				a[k] = fieldElement(d1)
				k++
			}
			if d2 < q && k < n {
				a[k] = fieldElement(d2)
				k++
			}
		}
	}
	return a
}

// prfEta derives a CBD-ready byte stream of 64*eta bytes from a 32-byte
// seed and a single-byte nonce via SHAKE256, implementing FIPS 203's PRF.
func prfEta(eta int, seed []byte, nonce byte) []byte {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{nonce})
	out := make([]byte, 64*eta)
	h.Read(out)
	return out
}

// sampleCBD draws a polynomial whose coefficients follow the centered
// binomial distribution CBD_eta, from a PRF output of exactly 64*eta
// bytes. Implements FIPS 203 Algorithm 8 (SamplePolyCBD), generalized to
// any eta via popcount rather than the two hardcoded eta values a
// Dilithium-style nibble-consuming sampler would need.
func sampleCBD(eta int, buf []byte) ringElement {
	var a ringElement
	bitLen := uint(2 * eta)
	bitPos := uint(0)
	bitsBuf := bitsWindow{data: buf}
	for i := 0; i < n; i++ {
		v := bitsBuf.take(bitPos, bitLen)
		bitPos += bitLen
		half := uint(eta)
		x := bits.OnesCount64(v & ((1 << half) - 1))
		y := bits.OnesCount64((v >> half) & ((1 << half) - 1))
		a[i] = fieldSub(fieldElement(x), fieldElement(y))
	}
	return a
}

// bitsWindow reads arbitrary-width little-endian bit windows out of a
// byte slice without requiring the window to be byte-aligned.
type bitsWindow struct {
	data []byte
}

func (w bitsWindow) take(bitOffset, bitLen uint) uint64 {
	var v uint64
	for i := uint(0); i < bitLen; i++ {
		bit := bitOffset + i
		byteIdx := bit / 8
		bitIdx := bit % 8
		b := (w.data[byteIdx] >> bitIdx) & 1
		v |= uint64(b) << i
	}
	return v
}
