package mlkem

import (
	"crypto/rand"
	"io"
)

// kem.go implements the CCA-secure KEM built from K-PKE via the
// Fujisaki-Okamoto transform: Encaps binds the ciphertext's randomness
// to a hash of the encapsulation key, and Decaps re-derives and
// re-encrypts to detect tampering, falling back to a pseudorandom
// "implicit rejection" key instead of returning an error so the KEM's
// public interface never signals decryption failure through its control
// flow. Grounded in the teacher's top-level Sign/Verify
// hash-then-dispatch-to-internal shape and its constant-time tag
// comparison in verifyInternal.

// Encapsulate implements FIPS 203 Algorithm 20 (ML-KEM.Encaps) against
// the given encapsulation key, drawing randomness from rnd
// (crypto/rand.Reader if nil). It returns the ciphertext and the
// 32-byte shared secret.
func Encapsulate(ek *encapsulationKey, rnd io.Reader) (ciphertext, sharedSecret []byte, err error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var m [32]byte
	if _, err := io.ReadFull(rnd, m[:]); err != nil {
		return nil, nil, wrapEntropy("Encapsulate", err)
	}
	ct, ss := encapsulateInternal(ek, m)
	zeroizeBytes(m[:])
	return ct, ss, nil
}

// encapsulateInternal implements FIPS 203 Algorithm 17
// (ML-KEM.Encaps_internal), the deterministic core used both by
// Encapsulate and by known-answer tests that supply m directly.
func encapsulateInternal(ek *encapsulationKey, m [32]byte) (ciphertext, sharedSecret []byte) {
	ekBytes := ek.Bytes()
	hpk := H(ekBytes)
	k, r := G(m[:], hpk[:])
	ct := pkeEncrypt(ek.params, ekBytes, m, r[:])
	return ct, k[:]
}

// Decapsulate implements FIPS 203 Algorithm 21 (ML-KEM.Decaps) against
// the given decapsulation key and ciphertext.
func (dk *decapsulationKey) Decapsulate(ct []byte) ([]byte, error) {
	if len(ct) != dk.params.CiphertextSize() {
		return nil, newError(InvalidLength, "Decapsulate", nil)
	}
	return decapsulateInternal(dk, ct), nil
}

// decapsulateInternal implements FIPS 203 Algorithm 18
// (ML-KEM.Decaps_internal): recovers m', re-derives (K', r'), re-encrypts
// under the cached public key, and constant-time-selects between K' and
// the implicit-rejection key J(z||c) depending on whether re-encryption
// reproduces the input ciphertext.
func decapsulateInternal(dk *decapsulationKey, ct []byte) []byte {
	mPrime := pkeDecrypt(dk.params, dk.sHat, ct)
	kPrime, rPrime := G(mPrime[:], dk.hpk[:])
	kBar := J(dk.z[:], ct)

	ctPrime := pkeEncrypt(dk.params, dk.ekBody, mPrime, rPrime[:])

	ok := ctEqBytes(ct, ctPrime)
	return condSelectBytes(1-ok, kPrime[:], kBar[:])
}

// per-level typed API, following the teacher's Key44/PrivateKey44/
// PublicKey44 naming pattern crossed with AlexanderYastrebov/mlkem's
// EncapsulationKey/DecapsulationKey naming (DESIGN.md keys.go entry).

// DecapsulationKey512 is an ML-KEM-512 (NIST category 1) private key.
type DecapsulationKey512 struct{ dk *decapsulationKey }

// DecapsulationKey768 is an ML-KEM-768 (NIST category 3) private key.
type DecapsulationKey768 struct{ dk *decapsulationKey }

// DecapsulationKey1024 is an ML-KEM-1024 (NIST category 5) private key.
type DecapsulationKey1024 struct{ dk *decapsulationKey }

// EncapsulationKey512 is an ML-KEM-512 public key.
type EncapsulationKey512 struct{ ek *encapsulationKey }

// EncapsulationKey768 is an ML-KEM-768 public key.
type EncapsulationKey768 struct{ ek *encapsulationKey }

// EncapsulationKey1024 is an ML-KEM-1024 public key.
type EncapsulationKey1024 struct{ ek *encapsulationKey }

// GenerateDecapsulationKey512 generates a fresh ML-KEM-512 key pair.
func GenerateDecapsulationKey512(rnd io.Reader) (*DecapsulationKey512, error) {
	dk, err := GenerateDecapsulationKey(paramSet512, rnd)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey512{dk}, nil
}

// GenerateDecapsulationKey768 generates a fresh ML-KEM-768 key pair.
func GenerateDecapsulationKey768(rnd io.Reader) (*DecapsulationKey768, error) {
	dk, err := GenerateDecapsulationKey(paramSet768, rnd)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey768{dk}, nil
}

// GenerateDecapsulationKey1024 generates a fresh ML-KEM-1024 key pair.
func GenerateDecapsulationKey1024(rnd io.Reader) (*DecapsulationKey1024, error) {
	dk, err := GenerateDecapsulationKey(paramSet1024, rnd)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey1024{dk}, nil
}

// NewDecapsulationKey512 deterministically derives an ML-KEM-512 key
// pair from a 64-byte d||z seed.
func NewDecapsulationKey512(seed []byte) (*DecapsulationKey512, error) {
	dk, err := NewDecapsulationKey(paramSet512, seed)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey512{dk}, nil
}

// NewDecapsulationKey768 deterministically derives an ML-KEM-768 key
// pair from a 64-byte d||z seed.
func NewDecapsulationKey768(seed []byte) (*DecapsulationKey768, error) {
	dk, err := NewDecapsulationKey(paramSet768, seed)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey768{dk}, nil
}

// NewDecapsulationKey1024 deterministically derives an ML-KEM-1024 key
// pair from a 64-byte d||z seed.
func NewDecapsulationKey1024(seed []byte) (*DecapsulationKey1024, error) {
	dk, err := NewDecapsulationKey(paramSet1024, seed)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey1024{dk}, nil
}

// NewDecapsulationKeyFromBytes512 parses an encoded ML-KEM-512
// decapsulation key in the dk-pke || ek || H(ek) || z layout Bytes
// produces, recovering a usable key from the byte blob alone (no seed
// required), per spec.md §4.5/§6.
func NewDecapsulationKeyFromBytes512(b []byte) (*DecapsulationKey512, error) {
	dk, err := NewDecapsulationKeyFromBytes(paramSet512, b)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey512{dk}, nil
}

// NewDecapsulationKeyFromBytes768 parses an encoded ML-KEM-768
// decapsulation key, see NewDecapsulationKeyFromBytes512.
func NewDecapsulationKeyFromBytes768(b []byte) (*DecapsulationKey768, error) {
	dk, err := NewDecapsulationKeyFromBytes(paramSet768, b)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey768{dk}, nil
}

// NewDecapsulationKeyFromBytes1024 parses an encoded ML-KEM-1024
// decapsulation key, see NewDecapsulationKeyFromBytes512.
func NewDecapsulationKeyFromBytes1024(b []byte) (*DecapsulationKey1024, error) {
	dk, err := NewDecapsulationKeyFromBytes(paramSet1024, b)
	if err != nil {
		return nil, err
	}
	return &DecapsulationKey1024{dk}, nil
}

// Bytes, EncapsulationKey, Decapsulate, and Destroy are thin forwards to
// the generic core for each of the three typed decapsulation keys.

func (k *DecapsulationKey512) Bytes() []byte { return k.dk.Bytes() }
func (k *DecapsulationKey768) Bytes() []byte { return k.dk.Bytes() }
func (k *DecapsulationKey1024) Bytes() []byte { return k.dk.Bytes() }

func (k *DecapsulationKey512) Decapsulate(ct []byte) ([]byte, error)  { return k.dk.Decapsulate(ct) }
func (k *DecapsulationKey768) Decapsulate(ct []byte) ([]byte, error)  { return k.dk.Decapsulate(ct) }
func (k *DecapsulationKey1024) Decapsulate(ct []byte) ([]byte, error) { return k.dk.Decapsulate(ct) }

func (k *DecapsulationKey512) Destroy()  { k.dk.Destroy() }
func (k *DecapsulationKey768) Destroy()  { k.dk.Destroy() }
func (k *DecapsulationKey1024) Destroy() { k.dk.Destroy() }

func (k *DecapsulationKey512) EncapsulationKey() (*EncapsulationKey512, error) {
	ek, err := k.dk.EncapsulationKey()
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey512{ek}, nil
}

func (k *DecapsulationKey768) EncapsulationKey() (*EncapsulationKey768, error) {
	ek, err := k.dk.EncapsulationKey()
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey768{ek}, nil
}

func (k *DecapsulationKey1024) EncapsulationKey() (*EncapsulationKey1024, error) {
	ek, err := k.dk.EncapsulationKey()
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey1024{ek}, nil
}

// NewEncapsulationKey512 parses and validates an encoded ML-KEM-512
// public key.
func NewEncapsulationKey512(b []byte) (*EncapsulationKey512, error) {
	ek, err := NewEncapsulationKey(paramSet512, b)
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey512{ek}, nil
}

// NewEncapsulationKey768 parses and validates an encoded ML-KEM-768
// public key.
func NewEncapsulationKey768(b []byte) (*EncapsulationKey768, error) {
	ek, err := NewEncapsulationKey(paramSet768, b)
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey768{ek}, nil
}

// NewEncapsulationKey1024 parses and validates an encoded ML-KEM-1024
// public key.
func NewEncapsulationKey1024(b []byte) (*EncapsulationKey1024, error) {
	ek, err := NewEncapsulationKey(paramSet1024, b)
	if err != nil {
		return nil, err
	}
	return &EncapsulationKey1024{ek}, nil
}

func (k *EncapsulationKey512) Bytes() []byte  { return k.ek.Bytes() }
func (k *EncapsulationKey768) Bytes() []byte  { return k.ek.Bytes() }
func (k *EncapsulationKey1024) Bytes() []byte { return k.ek.Bytes() }

func (k *EncapsulationKey512) Equal(other *EncapsulationKey512) bool   { return k.ek.Equal(other.ek) }
func (k *EncapsulationKey768) Equal(other *EncapsulationKey768) bool   { return k.ek.Equal(other.ek) }
func (k *EncapsulationKey1024) Equal(other *EncapsulationKey1024) bool { return k.ek.Equal(other.ek) }

func (k *EncapsulationKey512) Encapsulate(rnd io.Reader) (ciphertext, sharedSecret []byte, err error) {
	return Encapsulate(k.ek, rnd)
}

func (k *EncapsulationKey768) Encapsulate(rnd io.Reader) (ciphertext, sharedSecret []byte, err error) {
	return Encapsulate(k.ek, rnd)
}

func (k *EncapsulationKey1024) Encapsulate(rnd io.Reader) (ciphertext, sharedSecret []byte, err error) {
	return Encapsulate(k.ek, rnd)
}
