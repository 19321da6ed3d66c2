package decode

// MaskFunc is one of the eight boolean functions of (x, y) that, when true,
// flips a data module's sampled bit. Applying the same mask twice to a grid
// is the identity (XOR is its own inverse), which Decode and the test suite
// both rely on.
type MaskFunc func(x, y int) bool

var maskFuncs = [8]MaskFunc{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return (x*y)%2+(x*y)%3 == 0 },
	func(x, y int) bool { return ((x*y)%2+(x*y)%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+(x*y)%3)%2 == 0 },
}

// Mask returns the mask function for mask_id in [0, 7].
func Mask(id int) MaskFunc {
	return maskFuncs[id]
}
