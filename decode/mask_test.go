package decode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskInvolution(t *testing.T) {
	for id := 0; id < 8; id++ {
		mask := Mask(id)
		for y := 0; y < 30; y++ {
			for x := 0; x < 30; x++ {
				original := (x*7+y*13)%2 == 0
				bit := original
				if mask(x, y) {
					bit = !bit
				}
				if mask(x, y) {
					bit = !bit
				}
				require.Equal(t, original, bit)
			}
		}
	}
}
