package sigma

import "runtime"

// Zeroizer is implemented by prover-only values holding secrets.
type Zeroizer interface {
	Zeroize()
}

// Zeroize wipes v if it holds secrets. Other values are left alone.
func Zeroize(v any) {
	if z, ok := v.(Zeroizer); ok && z != nil {
		z.Zeroize()
	}
}

// ZeroizeBytes overwrites buf with zeros and prevents compiler dead store
// elimination using runtime.KeepAlive (golang/go#33325).
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
