package mlkem

import (
	"crypto/rand"
	"io"
)

// paramSet captures the per-level constants that differ across
// ML-KEM-512/768/1024: module rank k, the two CBD widths eta1/eta2, and
// the two ciphertext compression widths du/dv. Every other quantity
// (n, q, the NTT tables) is shared across all three levels. Grounded in
// AlexanderYastrebov/mlkem's ParameterSet value, generalizing the
// teacher's per-level constant blocks in its now-removed mldsaNN.go
// files into one table-driven core (DESIGN.md OQ-1).
type paramSet struct {
	name string
	k    int
	eta1 int
	eta2 int
	du   int
	dv   int
}

var (
	paramSet512  = &paramSet{name: "ML-KEM-512", k: 2, eta1: 3, eta2: 2, du: 10, dv: 4}
	paramSet768  = &paramSet{name: "ML-KEM-768", k: 3, eta1: 2, eta2: 2, du: 10, dv: 4}
	paramSet1024 = &paramSet{name: "ML-KEM-1024", k: 4, eta1: 2, eta2: 2, du: 11, dv: 5}
)

// ParameterSet returns the parameter set for a level (512, 768, or 1024,
// selecting ML-KEM-512/768/1024 respectively), for callers that select a
// level at runtime instead of using the NNN-suffixed typed wrappers.
// Implements spec.md §6's makeKem(level).
func ParameterSet(level int) (*paramSet, error) {
	switch level {
	case 512:
		return paramSet512, nil
	case 768:
		return paramSet768, nil
	case 1024:
		return paramSet1024, nil
	default:
		return nil, newError(InvalidParameter, "ParameterSet", nil)
	}
}

// EncapsulationKeySize returns the encoded size of this level's public
// (encapsulation) key: 384*k + 32 bytes.
func (p *paramSet) EncapsulationKeySize() int { return 384*p.k + 32 }

// DecapsulationKeySize returns the encoded size of this level's private
// (decapsulation) key: 768*k + 96 bytes.
func (p *paramSet) DecapsulationKeySize() int { return 768*p.k + 96 }

// CiphertextSize returns the encoded ciphertext size: 32*(du*k + dv) bytes.
func (p *paramSet) CiphertextSize() int { return 32 * (p.du*p.k + p.dv) }

// SharedSecretSize is the fixed 32-byte shared-secret size, the same for
// every parameter set.
const SharedSecretSize = 32

// decapsulationKey is the generic, level-agnostic private-key
// representation: the K-PKE secret vector s-hat, the encoded public key
// (needed to re-derive H(pk) and to re-encrypt during Decaps), the hash
// H(pk), and the 32-byte implicit-rejection seed z.
type decapsulationKey struct {
	params *paramSet
	sHat   []nttElement
	ekBody []byte  // the encoded encapsulation key, cached verbatim
	hpk    [32]byte
	z      [32]byte
}

// encapsulationKey is the generic, level-agnostic public-key
// representation: the encoded seed rho and the public vector t-hat.
type encapsulationKey struct {
	params *paramSet
	tHat   []nttElement
	rho    [32]byte
}

// GenerateDecapsulationKey runs FIPS 203's ML-KEM.KeyGen for the given
// parameter set, drawing randomness from rnd (crypto/rand.Reader if nil).
func GenerateDecapsulationKey(p *paramSet, rnd io.Reader) (*decapsulationKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var seed [64]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, wrapEntropy("GenerateDecapsulationKey", err)
	}
	dk, err := newDecapsulationKeyFromSeed(p, seed[:32], seed[32:])
	zeroizeBytes(seed[:])
	return dk, err
}

// NewDecapsulationKey deterministically derives a key pair from a 64-byte
// d||z seed, implementing FIPS 203's ML-KEM.KeyGen_internal entry point
// used by known-answer tests. GenerateDecapsulationKey runs the same
// derivation (newDecapsulationKeyFromSeed) on a freshly drawn seed.
func NewDecapsulationKey(p *paramSet, seed []byte) (*decapsulationKey, error) {
	if len(seed) != 64 {
		return nil, newError(InvalidLength, "NewDecapsulationKey", nil)
	}
	return newDecapsulationKeyFromSeed(p, seed[:32], seed[32:])
}

func newDecapsulationKeyFromSeed(p *paramSet, d, z []byte) (*decapsulationKey, error) {
	ekBody, sHat, err := pkeKeyGen(p, d)
	if err != nil {
		return nil, err
	}
	hpk := H(ekBody)
	dk := &decapsulationKey{params: p, sHat: sHat, ekBody: ekBody, hpk: hpk}
	copy(dk.z[:], z)
	return dk, nil
}

// Bytes encodes the decapsulation key as dk-pke || ek || H(ek) || z, the
// concatenation FIPS 203 specifies.
func (dk *decapsulationKey) Bytes() []byte {
	dkPKE := encodeSHat(dk.sHat)
	out := make([]byte, 0, len(dkPKE)+len(dk.ekBody)+32+32)
	out = append(out, dkPKE...)
	out = append(out, dk.ekBody...)
	out = append(out, dk.hpk[:]...)
	out = append(out, dk.z[:]...)
	return out
}

// EncapsulationKey returns the public half of dk.
func (dk *decapsulationKey) EncapsulationKey() (*encapsulationKey, error) {
	return parseEncapsulationKey(dk.params, dk.ekBody)
}

// Destroy zeroizes dk's secret material. Callers that generated a
// decapsulation key for a single Decapsulate call and do not need it
// afterward should call Destroy once done.
func (dk *decapsulationKey) Destroy() {
	zeroizeRingElements(dk.sHat)
	zeroizeBytes(dk.z[:])
}

// NewEncapsulationKey parses and validates an encoded encapsulation key,
// rejecting coefficients >= q per FIPS 203's encoding-validity check
// (spec.md §7 InvalidEncoding).
func NewEncapsulationKey(p *paramSet, b []byte) (*encapsulationKey, error) {
	return parseEncapsulationKey(p, b)
}

func parseEncapsulationKey(p *paramSet, b []byte) (*encapsulationKey, error) {
	if len(b) != p.EncapsulationKeySize() {
		return nil, newError(InvalidLength, "NewEncapsulationKey", nil)
	}
	tHat := make([]nttElement, p.k)
	for i := 0; i < p.k; i++ {
		f := byteDecode12(b[i*384 : (i+1)*384])
		for _, c := range f {
			if uint32(c) >= q {
				return nil, newError(InvalidEncoding, "NewEncapsulationKey", nil)
			}
		}
		tHat[i] = nttElement(f)
	}
	ek := &encapsulationKey{params: p, tHat: tHat}
	copy(ek.rho[:], b[384*p.k:])
	return ek, nil
}

// Bytes encodes the encapsulation key as t-hat || rho.
func (ek *encapsulationKey) Bytes() []byte {
	out := make([]byte, 0, ek.params.EncapsulationKeySize())
	out = append(out, encodeSHat(ek.tHat)...)
	out = append(out, ek.rho[:]...)
	return out
}

// Equal reports whether two encapsulation keys encode to the same bytes.
func (ek *encapsulationKey) Equal(other *encapsulationKey) bool {
	return ctEqBytes(ek.Bytes(), other.Bytes()) == 1
}

// encodeSHat encodes a vector of NTT-domain polynomials with the shared
// 12-bit-per-coefficient width used for both t-hat (public) and s-hat
// (private) vectors.
func encodeSHat(v []nttElement) []byte {
	out := make([]byte, 0, len(v)*384)
	for _, f := range v {
		out = append(out, byteEncode12(ringElement(f))...)
	}
	return out
}

func decodeSHat(b []byte, k int) []nttElement {
	v := make([]nttElement, k)
	for i := 0; i < k; i++ {
		v[i] = nttElement(byteDecode12(b[i*384 : (i+1)*384]))
	}
	return v
}

// EqualCT is an exported constant-time byte comparison, per spec.md §6.
func EqualCT(a, b []byte) bool {
	return ctEqBytes(a, b) == 1
}

// NewDecapsulationKeyFromBytes parses an encoded decapsulation key in
// the dk-pke || ek || H(ek) || z layout Bytes produces, the external
// byte-blob form FIPS 203's Algorithm 21 (ML-KEM.Decaps) parses its dk
// argument from (spec.md §4.5's "Decaps key layout", §6's
// decaps(dk_bytes, ct_bytes)). Validates the overall length and
// rejects out-of-range s-hat/t-hat coefficients the same way
// NewEncapsulationKey does for public keys (spec.md §7).
func NewDecapsulationKeyFromBytes(p *paramSet, b []byte) (*decapsulationKey, error) {
	return parseDecapsulationKey(p, b)
}

func parseDecapsulationKey(p *paramSet, b []byte) (*decapsulationKey, error) {
	if len(b) != p.DecapsulationKeySize() {
		return nil, newError(InvalidLength, "NewDecapsulationKeyFromBytes", nil)
	}

	dkPKESize := 384 * p.k
	ekSize := p.EncapsulationKeySize()
	dkPKE := b[:dkPKESize]
	ekBody := b[dkPKESize : dkPKESize+ekSize]
	hpk := b[dkPKESize+ekSize : dkPKESize+ekSize+32]
	z := b[dkPKESize+ekSize+32:]

	// parseEncapsulationKey both validates ek's length/coefficients and
	// gives us a decoded t-hat, though dk only needs to keep ekBody
	// verbatim for re-encryption during Decaps.
	if _, err := parseEncapsulationKey(p, ekBody); err != nil {
		return nil, err
	}

	sHat := make([]nttElement, p.k)
	for i := 0; i < p.k; i++ {
		f := byteDecode12(dkPKE[i*384 : (i+1)*384])
		for _, c := range f {
			if uint32(c) >= q {
				return nil, newError(InvalidEncoding, "NewDecapsulationKeyFromBytes", nil)
			}
		}
		sHat[i] = nttElement(f)
	}

	dk := &decapsulationKey{params: p, sHat: sHat, ekBody: append([]byte{}, ekBody...)}
	copy(dk.hpk[:], hpk)
	copy(dk.z[:], z)
	return dk, nil
}
