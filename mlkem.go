// Package mlkem implements ML-KEM (Module-Lattice Key Encapsulation
// Mechanism) as specified in FIPS 203.
//
// ML-KEM is a post-quantum key encapsulation mechanism standardized by
// NIST, built from the CPA-secure K-PKE public-key encryption scheme via
// the Fujisaki-Okamoto transform. This package supports three security
// categories:
//   - ML-KEM-512:  NIST category 1 (comparable to AES-128)
//   - ML-KEM-768:  NIST category 3 (comparable to AES-192)
//   - ML-KEM-1024: NIST category 5 (comparable to AES-256)
//
// Basic usage:
//
//	dk, err := mlkem.GenerateDecapsulationKey768(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	ek, err := dk.EncapsulationKey()
//	if err != nil {
//	    // handle error
//	}
//	ct, sharedSecret, err := ek.Encapsulate(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sharedSecret2, err := dk.Decapsulate(ct)
package mlkem

// Global ML-KEM constants from FIPS 203.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 3329.
	q = 3329

	// SeedSize is the size of the deterministic key-generation seed
	// (d || z) accepted by NewDecapsulationKey.
	SeedSize = 64
)
