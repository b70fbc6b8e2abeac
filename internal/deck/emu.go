package deck

// EMU (English Metric Units) are the native pptx length unit.
const emuPerInch = 914400

// Inches converts inches to EMU.
func Inches(in float64) int64 {
	return int64(in * emuPerInch)
}

// ToInches converts EMU back to inches, for display only.
func ToInches(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// Geometry defaults for the report template.
var (
	// Default indicator-marker track bounds, used when the template has no
	// named track shape next to a marker.
	defaultTrackLeft  = Inches(1.2)
	defaultTrackRight = Inches(6.5)

	// minChartExtent is the smallest width/height an inserted chart image
	// may occupy; smaller placeholders are enlarged to this floor.
	minChartExtent = Inches(2.0)
)
