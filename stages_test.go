package qrdecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPreparer struct{}

func (stubPreparer) Prepare(grey *GreyImage) *BinaryImage {
	return &BinaryImage{Dark: make([]bool, grey.Width*grey.Height), Width: grey.Width, Height: grey.Height}
}

type stubDetectorEmpty struct{}

func (stubDetectorEmpty) Detect(bin *BinaryImage) []QRLocation { return nil }

type stubDetectorOne struct{}

func (stubDetectorOne) Detect(bin *BinaryImage) []QRLocation {
	return []QRLocation{{Version: 1}}
}

type stubExtractorOK struct{}

func (stubExtractorOK) Extract(bin *BinaryImage, loc QRLocation) (*QRData, error) {
	return &QRData{Version: loc.Version}, nil
}

type stubDecoderOK struct{}

func (stubDecoderOK) Decode(data *QRData) (string, QRInfo, error) {
	return "payload", QRInfo{Version: data.Version}, nil
}

func buildStubPipeline(t *testing.T, detect Detector) *PipelineDecoder {
	t.Helper()
	p, err := NewDecoderBuilder().
		Prepare(stubPreparer{}).
		Detect(detect).
		Extract(stubExtractorOK{}).
		Decode(stubDecoderOK{}).
		Build()
	require.NoError(t, err)
	return p
}

func TestBuilderFailsOnEachMissingStageInOrder(t *testing.T) {
	_, err := NewDecoderBuilder().Build()
	require.Error(t, err)
	require.Equal(t, MissingPrepare, err.(*BuilderError).Kind)

	_, err = NewDecoderBuilder().Prepare(stubPreparer{}).Build()
	require.Equal(t, MissingDetect, err.(*BuilderError).Kind)

	_, err = NewDecoderBuilder().Prepare(stubPreparer{}).Detect(stubDetectorEmpty{}).Build()
	require.Equal(t, MissingExtract, err.(*BuilderError).Kind)

	_, err = NewDecoderBuilder().Prepare(stubPreparer{}).Detect(stubDetectorEmpty{}).Extract(stubExtractorOK{}).Build()
	require.Equal(t, MissingDecode, err.(*BuilderError).Kind)
}

func TestDecodeImageNoLocationsReturnsNil(t *testing.T) {
	pipeline := buildStubPipeline(t, stubDetectorEmpty{})
	grey := &GreyImage{Pix: make([]uint8, 4), Width: 2, Height: 2}
	require.Nil(t, pipeline.DecodeImage(grey))
}

func TestDecodeImageHappyPath(t *testing.T) {
	pipeline := buildStubPipeline(t, stubDetectorOne{})
	grey := &GreyImage{Pix: make([]uint8, 4), Width: 2, Height: 2}
	results := pipeline.DecodeImage(grey)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.Equal(t, "payload", results[0].Payload)
	require.Equal(t, 1, results[0].Info.Version)
}

type stubExtractorFails struct{}

func (stubExtractorFails) Extract(bin *BinaryImage, loc QRLocation) (*QRData, error) {
	return nil, &QRError{Kind: ErrInvalidFormat, Message: "nope"}
}

func TestDecodeImageExtractFailureDoesNotAbortOthers(t *testing.T) {
	p, err := NewDecoderBuilder().
		Prepare(stubPreparer{}).
		Detect(stubDetectorOne{}).
		Extract(stubExtractorFails{}).
		Decode(stubDecoderOK{}).
		Build()
	require.NoError(t, err)

	grey := &GreyImage{Pix: make([]uint8, 4), Width: 2, Height: 2}
	results := p.DecodeImage(grey)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}

func TestBuilderErrorKindStrings(t *testing.T) {
	require.Equal(t, "MissingPrepare", MissingPrepare.String())
	require.Equal(t, "MissingDetect", MissingDetect.String())
	require.Equal(t, "MissingExtract", MissingExtract.String())
	require.Equal(t, "MissingDecode", MissingDecode.String())
	require.Equal(t, "Unknown", BuilderErrorKind(99).String())
}
