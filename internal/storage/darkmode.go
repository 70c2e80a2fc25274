package storage

const darkModeKey = "darkMode"

// DarkMode reads the persisted theme flag, returning def when nothing
// usable is stored.
func DarkMode(g *Gateway, def bool) bool {
	dark := def
	g.Load(darkModeKey, &dark)
	return dark
}

// SetDarkMode persists the theme flag.
func SetDarkMode(g *Gateway, dark bool) {
	g.Save(darkModeKey, dark)
}
