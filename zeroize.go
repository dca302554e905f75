package mlkem

import "runtime"

// zeroizeBytes overwrites buf with zeros. runtime.KeepAlive blocks the
// compiler from eliding the stores as a dead write to a buffer it thinks
// is never read again, the same hazard cb-mpc-go's ZeroizeBytes guards
// against for MPC secret shares.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// zeroizeRingElements clears a slice of ring/NTT-domain polynomials,
// used to scrub the secret vector s-hat when a decapsulation key is
// destroyed, and the noise vectors K-PKE key generation and encryption
// sample, before those functions return.
func zeroizeRingElements[T ~[n]fieldElement](v []T) {
	for i := range v {
		for j := range v[i] {
			v[i][j] = 0
		}
	}
	runtime.KeepAlive(v)
}
