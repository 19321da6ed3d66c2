package qrdecode

// Preparer binarizes a greyscale raster. Implementations never fail:
// ambiguity about a pixel's darkness is pushed downstream.
type Preparer interface {
	Prepare(grey *GreyImage) *BinaryImage
}

// Detector scans a binary raster for candidate QR symbols and reconstructs
// an affine frame for each. A raster with no valid finder triples yields an
// empty slice, not an error.
type Detector interface {
	Detect(bin *BinaryImage) []QRLocation
}

// Extractor samples a binary raster at a QRLocation's frame into a module
// grid.
type Extractor interface {
	Extract(bin *BinaryImage, loc QRLocation) (*QRData, error)
}

// Decoder is the per-symbol payload decoder: it turns a sampled module grid
// into a payload string, and reports the diagnostic QRInfo supplementing it.
// Implementations that don't track diagnostics may return a zero QRInfo.
type Decoder interface {
	Decode(data *QRData) (string, QRInfo, error)
}

// Result is one candidate symbol's outcome: either a payload string paired
// with diagnostic info, or an error. Exactly one of Err and Payload/Info is
// meaningful.
type Result struct {
	Payload string
	Info    QRInfo
	Err     error
}

// PipelineDecoder wires Prepare, Detect, Extract, and Decode into the fixed
// four-stage dataflow described by the package. It holds no state between
// calls and is safe for concurrent reuse.
type PipelineDecoder struct {
	prepare Preparer
	detect  Detector
	extract Extractor
	decode  Decoder
}

// DecodeImage runs the full pipeline against a greyscale raster, returning
// one Result per candidate location Detect found. A location's Extract or
// Decode failure is captured in its own Result; it never aborts the others.
func (p *PipelineDecoder) DecodeImage(grey *GreyImage) []Result {
	bin := p.prepare.Prepare(grey)
	locs := p.detect.Detect(bin)
	if len(locs) == 0 {
		return nil
	}
	results := make([]Result, 0, len(locs))
	for _, loc := range locs {
		data, err := p.extract.Extract(bin, loc)
		if err != nil {
			results = append(results, Result{Err: err})
			continue
		}
		payload, info, err := p.decode.Decode(data)
		if err != nil {
			results = append(results, Result{Err: err})
			continue
		}
		results = append(results, Result{Payload: payload, Info: info})
	}
	return results
}

// BuilderErrorKind names which required stage a DecoderBuilder was missing
// at Build time.
type BuilderErrorKind int

const (
	MissingPrepare BuilderErrorKind = iota
	MissingDetect
	MissingExtract
	MissingDecode
)

func (k BuilderErrorKind) String() string {
	switch k {
	case MissingPrepare:
		return "MissingPrepare"
	case MissingDetect:
		return "MissingDetect"
	case MissingExtract:
		return "MissingExtract"
	case MissingDecode:
		return "MissingDecode"
	default:
		return "Unknown"
	}
}

// BuilderError reports which stage DecoderBuilder.Build found unset. A
// pipeline missing a stage fails here, at assembly time, rather than on the
// first call to DecodeImage.
type BuilderError struct {
	Kind BuilderErrorKind
}

func (e *BuilderError) Error() string {
	return "qrdecode: builder: " + e.Kind.String()
}

// DecoderBuilder assembles a PipelineDecoder from independently injectable
// stages, so alternative Prepare/Detect/Extract/Decode implementations can
// be swapped in for testing without touching the orchestrator.
type DecoderBuilder struct {
	prepare Preparer
	detect  Detector
	extract Extractor
	decode  Decoder
}

// NewDecoderBuilder returns an empty builder.
func NewDecoderBuilder() *DecoderBuilder {
	return &DecoderBuilder{}
}

func (b *DecoderBuilder) Prepare(p Preparer) *DecoderBuilder {
	b.prepare = p
	return b
}

func (b *DecoderBuilder) Detect(d Detector) *DecoderBuilder {
	b.detect = d
	return b
}

func (b *DecoderBuilder) Extract(e Extractor) *DecoderBuilder {
	b.extract = e
	return b
}

func (b *DecoderBuilder) Decode(d Decoder) *DecoderBuilder {
	b.decode = d
	return b
}

// Build validates that all four stages were supplied and assembles the
// pipeline. It fails fast with a typed BuilderError naming the first
// missing stage, rather than letting DecodeImage panic on a nil field.
func (b *DecoderBuilder) Build() (*PipelineDecoder, error) {
	if b.prepare == nil {
		return nil, &BuilderError{Kind: MissingPrepare}
	}
	if b.detect == nil {
		return nil, &BuilderError{Kind: MissingDetect}
	}
	if b.extract == nil {
		return nil, &BuilderError{Kind: MissingExtract}
	}
	if b.decode == nil {
		return nil, &BuilderError{Kind: MissingDecode}
	}
	return &PipelineDecoder{
		prepare: b.prepare,
		detect:  b.detect,
		extract: b.extract,
		decode:  b.decode,
	}, nil
}
