package dsp

import (
	"math"
	"math/cmplx"
	"testing"
)

func complexApproxEqual(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}

func TestFFTIFFTRoundTrip(t *testing.T) {
	x := []complex128{1, 2, 3, 4, 5, 6, 7, 8}
	y := FFT(x)
	back := IFFT(y)
	for i := range x {
		if !complexApproxEqual(x[i], back[i], 1e-9) {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, back[i], x[i])
		}
	}
}

func TestFFTAgreesWithDFTForNonPowerOfTwo(t *testing.T) {
	x := []complex128{1, 2, 3, 4, 5}
	fast := FFT(x)
	naive := DFT(x)
	for i := range x {
		if !complexApproxEqual(fast[i], naive[i], 1e-9) {
			t.Fatalf("mismatch at bin %d: FFT=%v DFT=%v", i, fast[i], naive[i])
		}
	}
}

func TestFFTRadix2MatchesDFT(t *testing.T) {
	x := []complex128{1, 0, -1, 0, 1, 0, -1, 0}
	fast := FFT(x)
	naive := DFT(x)
	for i := range x {
		if !complexApproxEqual(fast[i], naive[i], 1e-9) {
			t.Fatalf("mismatch at bin %d: FFT=%v DFT=%v", i, fast[i], naive[i])
		}
	}
}

func TestShiftIsInverseOfIShift(t *testing.T) {
	x := []complex128{1, 2, 3, 4, 5}
	shifted := Shift(x)
	back := IShift(shifted)
	for i := range x {
		if back[i] != x[i] {
			t.Fatalf("IShift(Shift(x)) != x at %d: got %v, want %v", i, back[i], x[i])
		}
	}
}

func TestConvolveMatchesConvolveFFT(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{0, 1, 0.5}
	direct := Convolve(a, b)
	viaFFT := ConvolveFFT(a, b)
	if len(direct) != len(viaFFT) {
		t.Fatalf("length mismatch: %d vs %d", len(direct), len(viaFFT))
	}
	for i := range direct {
		if math.Abs(direct[i]-viaFFT[i]) > 1e-6 {
			t.Fatalf("mismatch at %d: direct=%v fft=%v", i, direct[i], viaFFT[i])
		}
	}
}

func TestConvolveIsCommutative(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7}
	ab := Convolve(a, b)
	ba := Convolve(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("length mismatch: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i] != ba[i] {
			t.Fatalf("convolution is not commutative at %d: %v vs %v", i, ab[i], ba[i])
		}
	}
}

func TestSpectrumMagnitudes(t *testing.T) {
	x := make([]complex128, 8)
	for i := range x {
		x[i] = complex(math.Cos(2*math.Pi*float64(i)/8), 0)
	}
	mag := Spectrum(x)
	if len(mag) != 8 {
		t.Fatalf("expected 8 magnitudes, got %d", len(mag))
	}
}

func TestWindowsHaveLengthNAndValuesInUnitRange(t *testing.T) {
	n := 16
	for _, w := range [][]float64{Hann(n), Hamming(n), Blackman(n)} {
		if len(w) != n {
			t.Fatalf("expected %d samples, got %d", n, len(w))
		}
		for _, v := range w {
			if v < -1e-9 || v > 1+1e-9 {
				t.Fatalf("window value out of [0, 1]: %v", v)
			}
		}
	}
}
