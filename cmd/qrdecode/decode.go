package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/image/draw"

	"github.com/ashokshau/qrdecode"
	"github.com/ashokshau/qrdecode/decode"
	"github.com/ashokshau/qrdecode/detect"
	"github.com/ashokshau/qrdecode/extract"
	"github.com/ashokshau/qrdecode/prepare"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <image>",
		Short: "Decode every QR symbol found in an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	cmd.Flags().Int("block-width", 5, "binarization block width in pixels")
	cmd.Flags().Int("block-height", 7, "binarization block height in pixels")
	cmd.Flags().Int("window", 5, "binarization averaging window, in blocks")
	cmd.Flags().Int("max-dimension", 1600, "downsample images wider or taller than this many pixels before binarizing")
	_ = viper.BindPFlag("block-width", cmd.Flags().Lookup("block-width"))
	_ = viper.BindPFlag("block-height", cmd.Flags().Lookup("block-height"))
	_ = viper.BindPFlag("window", cmd.Flags().Lookup("window"))
	_ = viper.BindPFlag("max-dimension", cmd.Flags().Lookup("max-dimension"))
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	grey, err := loadGrey(args[0], viper.GetInt("max-dimension"))
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}

	pipeline, err := qrdecode.NewDecoderBuilder().
		Prepare(prepare.NewBlockedMean(viper.GetInt("block-width"), viper.GetInt("block-height"), viper.GetInt("window"))).
		Detect(detect.NewLineScan()).
		Extract(extract.NewQRExtractor()).
		Decode(decode.NewQRDecoderWithInfo()).
		Build()
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	log.Debug().Int("width", grey.Width).Int("height", grey.Height).Msg("image loaded")

	results := pipeline.DecodeImage(grey)
	if len(results) == 0 {
		fmt.Println("no QR symbols found")
		return nil
	}

	for i, r := range results {
		if r.Err != nil {
			log.Warn().Int("symbol", i).Err(r.Err).Msg("symbol decode failed")
			fmt.Printf("symbol %d: error: %v\n", i, r.Err)
			continue
		}
		log.Debug().Int("symbol", i).Int("version", r.Info.Version).Str("ec_level", r.Info.ECLevel.String()).Int("errors", r.Info.Errors).Msg("symbol decoded")
		fmt.Printf("symbol %d: %s\n", i, r.Payload)
	}
	return nil
}

func loadGrey(path string, maxDimension int) (*qrdecode.GreyImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	img = downscale(img, maxDimension)

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			rgba[i] = byte(r >> 8)
			rgba[i+1] = byte(g >> 8)
			rgba[i+2] = byte(b >> 8)
			rgba[i+3] = 0xFF
		}
	}
	return qrdecode.NewGreyImageFromRGBA(rgba, w, h), nil
}

// downscale shrinks img so neither dimension exceeds maxDimension, using a
// bilinear resample, before any capture-side cost is paid walking every
// pixel into a GreyImage. A non-positive maxDimension disables resampling;
// an image already within bounds is returned unchanged.
func downscale(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}

	scale := float64(maxDimension) / float64(w)
	if hScale := float64(maxDimension) / float64(h); hScale < scale {
		scale = hScale
	}
	newW := int(float64(w)*scale + 0.5)
	newH := int(float64(h)*scale + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
