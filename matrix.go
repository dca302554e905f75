package mlkem

// genMatrix deterministically expands a 32-byte seed rho into a k*k
// matrix of NTT-domain polynomials via sampleNTT, implementing FIPS 203's
// Algorithm 13 (K-PKE.KeyGen) matrix-generation step.
//
// transposed selects the index order: KeyGen needs A (A[i][j] generated
// with sampleNTT(rho, i, j)); Encaps needs A^T (the same seed, indices
// swapped) to compute u without ever materializing two separate
// matrices. ML-DSA's matrix is never transposed, so the teacher's
// equivalent loop never took this parameter.
func genMatrix(rho []byte, k int, transposed bool) []nttElement {
	a := make([]nttElement, k*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if transposed {
				a[i*k+j] = sampleNTT(rho, byte(j), byte(i))
			} else {
				a[i*k+j] = sampleNTT(rho, byte(i), byte(j))
			}
		}
	}
	return a
}

// sampleNoiseVec draws a length-k vector of ringElements from CBD_eta,
// sequencing the PRF nonce from a running counter so KeyGen's s and e,
// and Encaps's r, e1, e2, each draw disjoint nonce ranges from the same
// seed without reuse.
func sampleNoiseVec(eta int, seed []byte, startNonce byte, k int) ([]ringElement, byte) {
	v := make([]ringElement, k)
	nonce := startNonce
	for i := 0; i < k; i++ {
		v[i] = sampleCBD(eta, prfEta(eta, seed, nonce))
		nonce++
	}
	return v, nonce
}

// nttVec/invNTTVec apply the selected NTT backend's NTT/inverse NTT to
// every element of a vector.
func nttVec(v []ringElement) []nttElement {
	b := backend()
	out := make([]nttElement, len(v))
	for i := range v {
		out[i] = b.ntt(v[i])
	}
	return out
}

func invNTTVec(v []nttElement) []ringElement {
	b := backend()
	out := make([]ringElement, len(v))
	for i := range v {
		out[i] = b.invNTT(v[i])
	}
	return out
}

// polyToMont rescales a polynomial by the Montgomery factor R. Each
// basemul call returns a value implicitly scaled by R^-1 (fieldMul's
// Montgomery reduction divides by R once per multiplication), so every
// accumulated dot product needs exactly one such correction regardless
// of how many terms were summed — the same correction the Kyber
// reference applies via poly_tomont after polyvec_basemul_acc_montgomery.
func polyToMont(f nttElement) nttElement {
	var out nttElement
	for i := range f {
		out[i] = toMontgomery(f[i])
	}
	return out
}

// matVecMul computes A * v for a k*k NTT-domain matrix (row-major, a[i*k+j])
// and a length-k NTT-domain vector, accumulating each output row with
// basemul + polyAdd, the same accumulation structure as the teacher's
// t-hat = A-hat * s-hat loop in its per-level generate().
func matVecMul(a []nttElement, v []nttElement, k int) []nttElement {
	bm := backend().basemul
	out := make([]nttElement, k)
	for i := 0; i < k; i++ {
		var acc nttElement
		for j := 0; j < k; j++ {
			acc = polyAdd(acc, bm(a[i*k+j], v[j]))
		}
		out[i] = polyToMont(acc)
	}
	return out
}

// vecDot computes the inner product of two length-k NTT-domain vectors,
// used for Encrypt's t-hat^T * r-hat (into v) and Decrypt's
// s-hat^T * u-hat (into w).
func vecDot(a, b []nttElement) nttElement {
	bm := backend().basemul
	var acc nttElement
	for i := range a {
		acc = polyAdd(acc, bm(a[i], b[i]))
	}
	return polyToMont(acc)
}

// addNoiseVec adds an already-NTT-transformed error vector to v,
// implementing t-hat = A-hat*s-hat + e-hat.
func addNoiseVec(v []nttElement, eHat []nttElement) []nttElement {
	out := make([]nttElement, len(v))
	for i := range v {
		out[i] = polyAdd(v[i], eHat[i])
	}
	return out
}
