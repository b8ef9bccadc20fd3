package dsdneo

// Generalized Reed-Solomon decoding over GF(64) for the P25 trunking FEC
// fields (RS(24,16,9) status/trunking blocks and the shortened RS(63,xx)
// FACCH/SACCH/ESS variants of Phase 2), ported in shape from the table-
// driven Berlekamp-Massey decoder pattern used by the teacher's FX.25/RS
// layer, generalized to GF(64) per spec.md §4.8.

const (
	gf64Size = 63 // 2^6 - 1, nonzero elements
	gf64Prim = 0x43 // x^6 + x + 1, primitive polynomial for GF(64)
)

// gf64 holds the log/antilog tables for GF(64) arithmetic.
type gf64 struct {
	expTab [2 * gf64Size]int
	logTab [gf64Size + 1]int
}

func newGF64() *gf64 {
	g := &gf64{}
	x := 1
	for i := 0; i < gf64Size; i++ {
		g.expTab[i] = x
		g.logTab[x] = i
		x <<= 1
		if x&0x40 != 0 {
			x ^= gf64Prim
		}
	}
	for i := gf64Size; i < 2*gf64Size; i++ {
		g.expTab[i] = g.expTab[i-gf64Size]
	}
	return g
}

var gfRS = newGF64()

func (g *gf64) mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return g.expTab[g.logTab[a]+g.logTab[b]]
}

func (g *gf64) inv(a int) int {
	if a == 0 {
		return 0
	}
	return g.expTab[gf64Size-g.logTab[a]]
}

func (g *gf64) div(a, b int) int {
	if a == 0 {
		return 0
	}
	return g.expTab[(g.logTab[a]-g.logTab[b]+gf64Size)%gf64Size]
}

// RSParams describes a shortened GF(64) Reed-Solomon code: n and k in
// symbols (6-bit each), with the code treated as a puncture of the full
// (63,63-2t) code down to the given n.
type RSParams struct {
	N, K int // symbol counts; N-K = 2t parity symbols
}

// P25RS2416 is the (24,16,9) trunking/status RS code.
var P25RS2416 = RSParams{N: 24, K: 16}

// P25RSFACCH is the shortened RS(63,35) wrapper used by Phase 2 FACCH:
// 26 payload + 19 parity symbols.
var P25RSFACCH = RSParams{N: 45, K: 26}

// P25RSSACCH is the shortened RS(63,35) wrapper used by Phase 2 SACCH:
// 30 payload + 22 parity symbols.
var P25RSSACCH = RSParams{N: 52, K: 30}

// P25RSESS is the shortened RS(63,35) wrapper used by Phase 2 ESS:
// 16 payload + 28 parity symbols.
var P25RSESS = RSParams{N: 44, K: 16}

// syndrome computes the 2t syndrome values for a received codeword (index
// 0 = highest-order symbol, as in RSDecode) against roots
// alpha^0..alpha^(2t-1).
func rsSyndrome(recv []int, twoT int) []int {
	s := make([]int, twoT)
	for j := 0; j < twoT; j++ {
		acc := 0
		root := gfRS.expTab[j]
		x := 1
		for i := len(recv) - 1; i >= 0; i-- {
			acc ^= gfRS.mul(recv[i], x)
			x = gfRS.mul(x, root)
		}
		s[j] = acc
	}
	return s
}

func syndromeAllZero(s []int) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// rsBerlekampMassey finds the error-locator polynomial from the syndromes.
func rsBerlekampMassey(s []int) []int {
	twoT := len(s)
	c := make([]int, twoT+1)
	b := make([]int, twoT+1)
	c[0], b[0] = 1, 1
	l, m := 0, 1
	bb := 1
	for n := 0; n < twoT; n++ {
		delta := s[n]
		for i := 1; i <= l; i++ {
			delta ^= gfRS.mul(c[i], s[n-i])
		}
		if delta == 0 {
			m++
			continue
		}
		t := append([]int(nil), c...)
		coef := gfRS.div(delta, bb)
		for i := 0; i+m < len(c); i++ {
			c[i+m] ^= gfRS.mul(coef, b[i])
		}
		if 2*l <= n {
			l = n + 1 - l
			b = t
			bb = delta
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// rsFindRoots locates error positions by brute-force Chien search over the
// codeword length (n<=63 keeps this cheap per frame).
func rsFindRoots(locator []int, n int) []int {
	var roots []int
	for i := 0; i < n; i++ {
		x := gfRS.expTab[(gf64Size-i)%gf64Size]
		acc := 0
		pow := 1
		for _, c := range locator {
			acc ^= gfRS.mul(c, pow)
			pow = gfRS.mul(pow, x)
		}
		if acc == 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// RSDecode corrects a received GF(64) RS codeword in place (symbols as
// 6-bit ints, index 0 = most significant symbol). Returns the number of
// symbol errors corrected, or -1 if uncorrectable (syndrome nonzero but no
// consistent error locator found).
func RSDecode(params RSParams, recv []int) int {
	twoT := params.N - params.K
	if twoT <= 0 || len(recv) < params.N {
		return -1
	}
	s := rsSyndrome(recv, twoT)
	if syndromeAllZero(s) {
		return 0
	}
	locator := rsBerlekampMassey(s)
	errCount := len(locator) - 1
	if errCount <= 0 || errCount > twoT/2 {
		return -1
	}
	roots := rsFindRoots(locator, params.N)
	if len(roots) != errCount {
		return -1
	}
	// Forney algorithm: error magnitudes via syndrome/locator-derivative ratio.
	// With first consecutive root alpha^0: e = X * Omega(X^-1) / Lambda'(X^-1),
	// Omega(x) = S(x)*Lambda(x) mod x^2t.
	for _, pos := range roots {
		x := gfRS.expTab[pos%gf64Size]
		xInv := gfRS.inv(x)
		num := 0
		xInvPow := 1
		for i := 0; i < twoT; i++ {
			coef := 0
			for j := 0; j <= i && j < len(locator); j++ {
				coef ^= gfRS.mul(locator[j], s[i-j])
			}
			num ^= gfRS.mul(coef, xInvPow)
			xInvPow = gfRS.mul(xInvPow, xInv)
		}
		denom := rsLocatorDerivative(locator, xInv)
		if denom == 0 {
			return -1
		}
		mag := gfRS.mul(x, gfRS.div(num, denom))
		idx := len(recv) - 1 - pos
		if idx < 0 || idx >= len(recv) {
			return -1
		}
		recv[idx] ^= mag
	}
	return errCount
}

// rsLocatorDerivative evaluates the formal derivative of the error locator
// polynomial (odd-power terms only, GF(2^m) characteristic 2) at x.
func rsLocatorDerivative(locator []int, x int) int {
	acc := 0
	pow := 1
	for i := 1; i < len(locator); i += 2 {
		acc ^= gfRS.mul(locator[i], pow)
		pow = gfRS.mul(pow, gfRS.mul(x, x))
	}
	return acc
}
