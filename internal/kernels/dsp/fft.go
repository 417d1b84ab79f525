// Package dsp implements spec.md §4.7's digital signal processing kernels:
// FFT/IFFT, naive DFT, convolution, and window functions. There is no
// third-party FFT/DSP library anywhere in the retrieved example corpus, so
// this package is deliberately stdlib-only (math, math/cmplx) — see
// DESIGN.md's domain-stack justification for internal/kernels/*.
package dsp

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of x via recursive radix-2
// Cooley-Tukey when len(x) is a power of two, falling back to the O(n^2)
// DFT otherwise (spec.md §4.7: FFT must accept arbitrary length input).
func FFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}
	if isPowerOfTwo(n) {
		return fftRadix2(x)
	}
	return DFT(x)
}

// IFFT computes the inverse discrete Fourier transform: conjugate, FFT,
// conjugate, scale by 1/n (spec.md §4.7).
func IFFT(x []complex128) []complex128 {
	n := len(x)
	conj := make([]complex128, n)
	for i, v := range x {
		conj[i] = cmplx.Conj(v)
	}
	y := FFT(conj)
	out := make([]complex128, n)
	for i, v := range y {
		out[i] = cmplx.Conj(v) / complex(float64(n), 0)
	}
	return out
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func fftRadix2(x []complex128) []complex128 {
	n := len(x)
	if n == 1 {
		return []complex128{x[0]}
	}
	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}
	fe := fftRadix2(even)
	fo := fftRadix2(odd)
	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		twiddle := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n)) * fo[k]
		out[k] = fe[k] + twiddle
		out[k+n/2] = fe[k] - twiddle
	}
	return out
}

// DFT computes the discrete Fourier transform directly from its definition
// (spec.md §4.7); used for non-power-of-two lengths.
func DFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t, v := range x {
			angle := -2 * math.Pi * float64(k) * float64(t) / float64(n)
			sum += v * cmplx.Rect(1, angle)
		}
		out[k] = sum
	}
	return out
}

// Shift swaps the left and right halves of x (zero-frequency centering,
// spec.md §4.7's fftshift); IShift is its exact self-inverse for even n and
// the correct inverse for odd n.
func Shift(x []complex128) []complex128 {
	n := len(x)
	mid := (n + 1) / 2
	return rotate(x, mid)
}

func IShift(x []complex128) []complex128 {
	n := len(x)
	mid := n / 2
	return rotate(x, mid)
}

func rotate(x []complex128, mid int) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = x[(i+mid)%n]
	}
	return out
}

// Spectrum returns the magnitude of each FFT bin (spec.md §4.7's
// fft_spectrum, and §4.5's fft_mag).
func Spectrum(x []complex128) []float64 {
	return magnitudeOf(FFT(x))
}

// Phase returns atan2(im, re) in (-π, π] for each FFT bin (spec.md §4.7's
// "Phase is atan2(im, re)", and §4.5's fft_phase).
func Phase(x []complex128) []float64 {
	return phaseOf(FFT(x))
}

// SpectrumDFT and PhaseDFT are the naive-DFT counterparts of Spectrum and
// Phase (spec.md §4.5's dft_mag/dft_phase).
func SpectrumDFT(x []complex128) []float64 {
	return magnitudeOf(DFT(x))
}

func PhaseDFT(x []complex128) []float64 {
	return phaseOf(DFT(x))
}

func magnitudeOf(y []complex128) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = cmplx.Abs(v)
	}
	return out
}

func phaseOf(y []complex128) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = math.Atan2(imag(v), real(v))
	}
	return out
}
