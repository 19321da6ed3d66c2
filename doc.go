// Package qrdecode locates QR symbols in a greyscale raster, samples their
// modules, and recovers the original payload after Reed-Solomon error
// correction.
//
// The pipeline is a fixed four stages: Prepare binarizes the raster, Detect
// finds finder patterns and reconstructs an affine frame per symbol, Extract
// samples that frame into a module grid, and Decode turns the grid into a
// payload string. Each stage is a one-method interface so alternative
// implementations can be swapped in through DecoderBuilder for testing.
//
// The package keeps no state between calls to Decoder.Decode and holds no
// shared mutable state, so a single Decoder is safe to reuse concurrently
// across goroutines.
package qrdecode
