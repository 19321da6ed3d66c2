package qrdecode

// DecoderBuilder (stages.go) assembles a PipelineDecoder from independently
// injectable Prepare/Detect/Extract/Decode stages; this package defines the
// stage interfaces and the orchestrator but does not wire concrete
// implementations itself, since those live in sibling packages (prepare,
// detect, extract, decode) that import this package for its types — wiring
// them here would be an import cycle. See package qrpreset for the default
// assembly (BlockedMean + LineScan + QRExtractor + QRDecoder), the
// equivalent of what a decoder construction helper would normally own.
