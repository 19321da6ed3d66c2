package decode

import "github.com/ashokshau/qrdecode"

// decodeFull runs every decode sub-stage in order — format, version,
// codeword extraction, de-interleaving, Reed-Solomon correction, payload
// grammar — and always computes the full QRInfo; QRDecoder and
// QRDecoderWithInfo differ only in whether they hand that diagnostic back
// to the caller.
func decodeFull(data *qrdecode.QRData) (string, qrdecode.QRInfo, error) {
	format, err := DecodeFormat(data)
	if err != nil {
		return "", qrdecode.QRInfo{}, err
	}

	version, err := DecodeVersion(data, data.Version)
	if err != nil {
		return "", qrdecode.QRInfo{}, err
	}

	blocks := BlockInfos(version, format.Level)
	mask := Mask(format.MaskID)
	codewords := ExtractCodewords(data, mask)

	rawBlocks, err := DeInterleave(codewords, blocks)
	if err != nil {
		return "", qrdecode.QRInfo{}, err
	}

	totalErrors := 0
	bitstream := make([]byte, 0, len(codewords))
	for i, raw := range rawBlocks {
		corrected, errs, err := CorrectBlock(raw, blocks[i].ECCap)
		if err != nil {
			return "", qrdecode.QRInfo{}, err
		}
		totalErrors += errs
		bitstream = append(bitstream, corrected[:blocks[i].DataPer]...)
	}

	payload, err := DecodePayload(bitstream, version)
	if err != nil {
		return "", qrdecode.QRInfo{}, err
	}

	totalDataBits := 0
	for _, b := range blocks {
		totalDataBits += b.DataPer * 8
	}

	return payload, qrdecode.QRInfo{
		Version:       version,
		ECLevel:       format.Level,
		TotalDataBits: totalDataBits,
		Errors:        totalErrors,
	}, nil
}

// QRDecoder is the minimal Decoder: it returns the payload string only. It
// still performs the full pipeline internally (there is no cheaper partial
// path) but discards the diagnostic QRInfo.
type QRDecoder struct{}

func NewQRDecoder() *QRDecoder { return &QRDecoder{} }

func (*QRDecoder) Decode(data *qrdecode.QRData) (string, qrdecode.QRInfo, error) {
	payload, _, err := decodeFull(data)
	return payload, qrdecode.QRInfo{}, err
}

// QRDecoderWithInfo is the diagnostic Decoder: it returns the payload
// alongside the full QRInfo (version, EC level, data-bit capacity used, and
// corrected-bit count).
type QRDecoderWithInfo struct{}

func NewQRDecoderWithInfo() *QRDecoderWithInfo { return &QRDecoderWithInfo{} }

func (*QRDecoderWithInfo) Decode(data *qrdecode.QRData) (string, qrdecode.QRInfo, error) {
	return decodeFull(data)
}
