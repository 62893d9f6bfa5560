package uitest

// Size represents terminal dimensions.
type Size struct {
	Width  int
	Height int
}

// Predefined terminal sizes for consistent testing.
var (
	Compact  = Size{Width: 80, Height: 24}
	Standard = Size{Width: 120, Height: 40}
)
