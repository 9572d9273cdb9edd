package backend

// Color is a palette color index, or -1 for the terminal default.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// AttrMask is a bit set of text attributes.
type AttrMask uint32

const (
	AttrBold AttrMask = 1 << iota
	AttrReverse
	AttrUnderline
	AttrDim
)

// Style combines foreground, background and attributes for one cell.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle is the terminal's own colors with no attributes.
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// Bold enables or disables bold.
func (s Style) Bold(on bool) Style {
	return s.attr(AttrBold, on)
}

// Reverse enables or disables reverse video.
func (s Style) Reverse(on bool) Style {
	return s.attr(AttrReverse, on)
}

// Underline enables or disables underline.
func (s Style) Underline(on bool) Style {
	return s.attr(AttrUnderline, on)
}

// Dim enables or disables dim.
func (s Style) Dim(on bool) Style {
	return s.attr(AttrDim, on)
}

func (s Style) attr(mask AttrMask, on bool) Style {
	if on {
		s.attrs |= mask
	} else {
		s.attrs &^= mask
	}
	return s
}

// Decompose returns the foreground, background and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}
