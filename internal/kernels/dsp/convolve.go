package dsp

import "math"

// Convolve computes the direct, full discrete convolution of a and b
// (spec.md §4.7): result length len(a)+len(b)-1.
func Convolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		if av == 0 {
			continue
		}
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// ConvolveFFT computes the same result via zero-padded FFT multiplication,
// asymptotically faster for long inputs (spec.md §4.7's "convolution via
// FFT" path).
func ConvolveFFT(a, b []float64) []float64 {
	n := len(a) + len(b) - 1
	size := 1
	for size < n {
		size <<= 1
	}
	ca := make([]complex128, size)
	cb := make([]complex128, size)
	for i, v := range a {
		ca[i] = complex(v, 0)
	}
	for i, v := range b {
		cb[i] = complex(v, 0)
	}
	fa := FFT(ca)
	fb := FFT(cb)
	prod := make([]complex128, size)
	for i := range prod {
		prod[i] = fa[i] * fb[i]
	}
	res := IFFT(prod)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = real(res[i])
	}
	return out
}

// Hann returns an n-point Hann window (spec.md §4.7).
func Hann(n int) []float64 { return window(n, 0.5, 0.5, 0) }

// Hamming returns an n-point Hamming window.
func Hamming(n int) []float64 { return window(n, 0.54, 0.46, 0) }

// Blackman returns an n-point Blackman window.
func Blackman(n int) []float64 { return window(n, 0.42, 0.5, 0.08) }

func window(n int, a0, a1, a2 float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		out[i] = a0 - a1*math.Cos(2*math.Pi*frac) + a2*math.Cos(2*math.Pi*2*frac)
	}
	return out
}
