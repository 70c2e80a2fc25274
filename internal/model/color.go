package model

// Color is one value from the fixed note palette.
type Color string

// The note palette.
const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
)

// Colors lists the palette in display order.
func Colors() []Color {
	return []Color{
		ColorDefault,
		ColorRed,
		ColorOrange,
		ColorYellow,
		ColorGreen,
		ColorBlue,
		ColorPurple,
	}
}

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	switch c {
	case ColorDefault, ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple:
		return true
	}
	return false
}

// ParseColor maps a string to a palette Color, falling back to the default
// for unknown input.
func ParseColor(s string) Color {
	c := Color(s)
	if !c.Valid() {
		return ColorDefault
	}
	return c
}
