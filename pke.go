package mlkem

// pke.go implements K-PKE, the CPA-secure MLWE public-key encryption
// scheme FIPS 203 builds the CCA-secure KEM on top of via the
// Fujisaki-Okamoto transform in kem.go. Grounded in the teacher's
// generate()/signInternal NTT-domain accumulation loops (field.go/ntt.go
// supply the same arithmetic primitives), adapted from the signature
// equations to K-PKE's encryption equations (spec.md §4.6).

// pkeKeyGen implements FIPS 203 Algorithm 13 (K-PKE.KeyGen), returning
// the encoded public key (t-hat || rho) and the raw secret vector s-hat.
func pkeKeyGen(p *paramSet, d []byte) (ekBody []byte, sHat []nttElement, err error) {
	rho, sigma := G(d, []byte{byte(p.k)})

	aHat := genMatrix(rho[:], p.k, false)

	s, nonce := sampleNoiseVec(p.eta1, sigma[:], 0, p.k)
	e, _ := sampleNoiseVec(p.eta1, sigma[:], nonce, p.k)

	sHat = nttVec(s)
	eHat := nttVec(e)

	tHat := addNoiseVec(matVecMul(aHat, sHat, p.k), eHat)
	zeroizeRingElements(s)
	zeroizeRingElements(e)
	zeroizeRingElements(eHat)

	ekBody = make([]byte, 0, p.EncapsulationKeySize())
	ekBody = append(ekBody, encodeSHat(tHat)...)
	ekBody = append(ekBody, rho[:]...)
	return ekBody, sHat, nil
}

// pkeEncrypt implements FIPS 203 Algorithm 14 (K-PKE.Encrypt): encrypts
// the 32-byte message m under the encoded public key ekBody, using
// randomness r as the CBD/PRF seed. Returns the ciphertext c1 || c2.
func pkeEncrypt(p *paramSet, ekBody []byte, m [32]byte, r []byte) []byte {
	tHat := decodeSHat(ekBody[:384*p.k], p.k)
	rho := ekBody[384*p.k:]

	aHatT := genMatrix(rho, p.k, true)

	rVec, nonce := sampleNoiseVec(p.eta1, r, 0, p.k)
	e1, nonce := sampleNoiseVec(p.eta2, r, nonce, p.k)
	e2 := sampleCBD(p.eta2, prfEta(p.eta2, r, nonce))

	rHat := nttVec(rVec)

	u := invNTTVec(matVecMul(aHatT, rHat, p.k))
	for i := range u {
		u[i] = polyAdd(u[i], e1[i])
	}

	mu := decompressPoly(1, byteDecode1(m[:]))
	vHat := vecDot(tHat, rHat)
	v := polyAdd(polyAdd(backend().invNTT(vHat), e2), mu)

	c1 := make([]byte, 0, 32*p.du*p.k)
	for i := range u {
		c1 = append(c1, byteEncode(p.du, compressPoly(p.du, u[i]))...)
	}
	c2 := byteEncode(p.dv, compressPoly(p.dv, v))
	zeroizeRingElements(rVec)
	zeroizeRingElements(rHat)
	zeroizeRingElements(e1)

	return append(c1, c2...)
}

// pkeDecrypt implements FIPS 203 Algorithm 15 (K-PKE.Decrypt): recovers
// the 32-byte message from ciphertext ct using secret vector s-hat.
func pkeDecrypt(p *paramSet, sHat []nttElement, ct []byte) [32]byte {
	uSize := 32 * p.du
	c1 := ct[:uSize*p.k]
	c2 := ct[uSize*p.k:]

	u := make([]ringElement, p.k)
	for i := 0; i < p.k; i++ {
		u[i] = decompressPoly(p.du, byteDecode(p.du, c1[i*uSize:(i+1)*uSize]))
	}
	v := decompressPoly(p.dv, byteDecode(p.dv, c2))

	uHat := nttVec(u)
	w := polySub(v, backend().invNTT(vecDot(sHat, uHat)))

	var m [32]byte
	copy(m[:], byteEncode1(compressPoly(1, w)))
	return m
}
