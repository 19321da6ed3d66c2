// Package qrpreset wires the package's own stage implementations into a
// ready-to-use pipeline, the equivalent of original_source's
// default_builder()/default_builder_with_info(): BlockedMean for Prepare,
// LineScan for Detect, QRExtractor for Extract, and QRDecoder or
// QRDecoderWithInfo for Decode.
package qrpreset

import (
	"github.com/ashokshau/qrdecode"
	"github.com/ashokshau/qrdecode/decode"
	"github.com/ashokshau/qrdecode/detect"
	"github.com/ashokshau/qrdecode/extract"
	"github.com/ashokshau/qrdecode/prepare"
)

// Default builds the minimal pipeline: payload strings only.
func Default() (*qrdecode.PipelineDecoder, error) {
	return qrdecode.NewDecoderBuilder().
		Prepare(prepare.DefaultBlockedMean()).
		Detect(detect.NewLineScan()).
		Extract(extract.NewQRExtractor()).
		Decode(decode.NewQRDecoder()).
		Build()
}

// DefaultWithInfo builds the diagnostic pipeline: payload strings paired
// with QRInfo (version, EC level, data bits, corrected-error count).
func DefaultWithInfo() (*qrdecode.PipelineDecoder, error) {
	return qrdecode.NewDecoderBuilder().
		Prepare(prepare.DefaultBlockedMean()).
		Detect(detect.NewLineScan()).
		Extract(extract.NewQRExtractor()).
		Decode(decode.NewQRDecoderWithInfo()).
		Build()
}
