package mlkem

// zetas contains the precomputed twiddle factors for the NTT and for
// basemul, in Montgomery form.
// zetas[k] = 17^(bitrev7(k)) * R mod q for k = 0..127, where 17 is a
// primitive 256th root of unity mod q and R = 2^16.
//
// Because q ≡ 1 mod 2n but not mod 4n, x^n+1 splits into 128 irreducible
// quadratic factors rather than n linear ones: ntt/invNTT run only 7
// layers (stopping at blocks of length 2), and pointwise multiplication
// in the NTT domain is the 64-block basemul below, not a plain
// coefficient-wise product.
var zetas = [128]fieldElement{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202,
	3158, 622, 1577, 182, 962, 2127, 1855, 1468,
	573, 2004, 264, 383, 2500, 1458, 1727, 3199,
	2648, 1017, 732, 608, 1787, 411, 3124, 1758,
	1223, 652, 2777, 1015, 2036, 1491, 3047, 1785,
	516, 3321, 3009, 2663, 1711, 2167, 126, 1469,
	2476, 3239, 3058, 830, 107, 1908, 3082, 2378,
	2931, 961, 1821, 2604, 448, 2264, 677, 2054,
	2226, 430, 555, 843, 2078, 871, 1550, 105,
	422, 587, 177, 3094, 3038, 2869, 1574, 1653,
	3083, 778, 1159, 3182, 2552, 1483, 2727, 1119,
	1739, 644, 2457, 349, 418, 329, 3173, 3254,
	817, 1097, 603, 610, 1322, 2044, 1864, 384,
	2114, 3193, 1218, 1994, 2455, 220, 2142, 1670,
	2144, 1799, 2051, 794, 1819, 2475, 2459, 478,
	3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// ntt performs the Number Theoretic Transform on a polynomial.
// The input is in normal form; the output is in NTT form, i.e. 128 pairs
// of coefficients each belonging to one quadratic factor.
func ntt(f ringElement) nttElement {
	k := 1
	for length := 128; length >= 2; length /= 2 {
		for start := 0; start < n; start += 2 * length {
			zeta := zetas[k]
			k++
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fieldMul(zeta, fHi[j])
				fHi[j] = fieldSub(fLo[j], t)
				fLo[j] = fieldAdd(fLo[j], t)
			}
		}
	}
	return nttElement(f)
}

// invNTT performs the inverse Number Theoretic Transform.
// Input is in NTT form, output is in normal form.
func invNTT(f nttElement) ringElement {
	k := 127
	for length := 2; length < n; length *= 2 {
		for start := 0; start < n; start += 2 * length {
			zeta := q - uint32(zetas[k])
			k--
			fLo := f[start : start+length]
			fHi := f[start+length : start+2*length]
			for j := 0; j < length; j++ {
				t := fLo[j]
				fLo[j] = fieldAdd(t, fHi[j])
				fHi[j] = fieldMul(fieldElement(zeta), fieldSub(t, fHi[j]))
			}
		}
	}
	for i := range f {
		f[i] = fieldMul(f[i], invN)
	}
	return ringElement(f)
}

// basemul performs pointwise multiplication of two NTT-domain polynomials.
// Each of the 128 coefficients pairs into one of 64 degree-2 blocks of
// four coefficients (a[4i..4i+3]); the two halves of a block multiply
// modulo (x^2 - zetas[64+i]) and (x^2 + zetas[64+i]) respectively.
func basemul(a, b nttElement) nttElement {
	var c nttElement
	for i := 0; i < 64; i++ {
		zeta := zetas[64+i]
		basemulBlock(c[4*i:4*i+2], a[4*i:4*i+2], b[4*i:4*i+2], zeta)
		basemulBlock(c[4*i+2:4*i+4], a[4*i+2:4*i+4], b[4*i+2:4*i+4], fieldReduceOnce(q-uint32(zeta)))
	}
	return c
}

// basemulBlock multiplies a,b as elements of Z_q[x]/(x^2 - zeta).
func basemulBlock(r, a, b []fieldElement, zeta fieldElement) {
	r[0] = fieldAdd(fieldMul(a[0], b[0]), fieldMul(fieldMul(a[1], b[1]), zeta))
	r[1] = fieldAdd(fieldMul(a[0], b[1]), fieldMul(a[1], b[0]))
}
