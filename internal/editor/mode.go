package editor

// Mode selects which representation is authoritative for display. The other
// representation is only materialized at a mode switch or at commit.
type Mode uint8

const (
	// ModeForm shows the filterable checkbox form.
	ModeForm Mode = iota

	// ModeText shows the raw JSON text view.
	ModeText
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeForm:
		return "form"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}
