package styles

// Status icons, plain unicode without Nerd Font glyphs.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
)
