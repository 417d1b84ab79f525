package registry

import (
	"github.com/eddndev/achronyme-go/internal/kernels/dsp"
	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// registerDSP wires spec.md §4.7's signal-processing builtins onto package
// kernels/dsp.
func registerDSP(r *Registry) {
	r.register("fft", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("fft", args, 0)
		if err != nil {
			return nil, err
		}
		return fromComplexVector(dsp.FFT(x)), nil
	})
	r.register("ifft", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("ifft", args, 0)
		if err != nil {
			return nil, err
		}
		return fromComplexVector(dsp.IFFT(x)), nil
	})
	r.register("dft", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("dft", args, 0)
		if err != nil {
			return nil, err
		}
		return fromComplexVector(dsp.DFT(x)), nil
	})
	r.register("fftshift", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("fftshift", args, 0)
		if err != nil {
			return nil, err
		}
		return fromComplexVector(dsp.Shift(x)), nil
	})
	r.register("ifftshift", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("ifftshift", args, 0)
		if err != nil {
			return nil, err
		}
		return fromComplexVector(dsp.IShift(x)), nil
	})
	r.register("fft_spectrum", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("fft_spectrum", args, 0)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.Spectrum(x)), nil
	})
	r.register("fft_mag", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("fft_mag", args, 0)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.Spectrum(x)), nil
	})
	r.register("fft_phase", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("fft_phase", args, 0)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.Phase(x)), nil
	})
	r.register("dft_mag", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("dft_mag", args, 0)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.SpectrumDFT(x)), nil
	})
	r.register("dft_phase", 1, 1, func(args []value.Value) (value.Value, error) {
		x, err := toComplexVector("dft_phase", args, 0)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.PhaseDFT(x)), nil
	})
	r.register("conv", 2, 2, func(args []value.Value) (value.Value, error) {
		a, err := toVector("conv", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := toVector("conv", args, 1)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.Convolve(a, b)), nil
	})
	r.register("conv_fft", 2, 2, func(args []value.Value) (value.Value, error) {
		a, err := toVector("conv_fft", args, 0)
		if err != nil {
			return nil, err
		}
		b, err := toVector("conv_fft", args, 1)
		if err != nil {
			return nil, err
		}
		return fromVector(dsp.ConvolveFFT(a, b)), nil
	})
	r.register("hanning", 1, 1, windowFn("hanning", dsp.Hann))
	r.register("hamming", 1, 1, windowFn("hamming", dsp.Hamming))
	r.register("blackman", 1, 1, windowFn("blackman", dsp.Blackman))
}

func windowFn(name string, f func(int) []float64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		n, err := number(name, args, 0)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, soerr.New(soerr.Domain, "%s: length must be at least 1", name)
		}
		return fromVector(f(int(n))), nil
	}
}
