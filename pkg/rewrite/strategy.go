package rewrite

// SizeThreshold separates the buffered path from the mapped path.
// Files strictly larger than this are mapped.
const SizeThreshold int64 = 16 * 1024

// 🧭 Strategy names the read path used for a file
type Strategy int

const (
	Buffered Strategy = iota
	Mapped
)

// String returns a string representation of Strategy
func (s Strategy) String() string {
	if s == Mapped {
		return "mapped"
	}
	return "buffered"
}

// 🧭 SelectStrategy picks the read path for a file of the given size
func SelectStrategy(size int64) Strategy {
	if size > SizeThreshold {
		return Mapped
	}
	return Buffered
}
