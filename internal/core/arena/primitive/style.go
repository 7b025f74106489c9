package primitive

// Style carries the presentation attributes of a primitive. It is a plain
// value: copying a Style never shares state with the palette it came from.
type Style struct {
	Class       string
	Fill        string
	Stroke      string
	StrokeWidth float64
	// Dash is the on/off stroke pattern; the zero value draws a solid line.
	Dash    [2]float64
	Opacity float64
}

// Palette is the set of styles a render pass picks from.
type Palette struct {
	Outline          Style
	Wall             Style
	Paddle           Style
	OwnPaddle        Style
	HitZone          Style
	HitZoneColliding Style
	Ball             Style
	Label            Style
	OwnLabel         Style
	Score            Style
	DebugLabel       Style
	Banner           Style
}

// DefaultPalette is the stock look of the arena.
func DefaultPalette() Palette {
	return Palette{
		Outline:          Style{Class: "arena-outline", Fill: "none", Stroke: "#808080", StrokeWidth: 2, Opacity: 1},
		Wall:             Style{Class: "arena-wall", Fill: "none", Stroke: "#4a4a4a", StrokeWidth: 6, Opacity: 1},
		Paddle:           Style{Class: "paddle", Fill: "#ffffff", Stroke: "none", Opacity: 1},
		OwnPaddle:        Style{Class: "paddle paddle-own", Fill: "#ffd400", Stroke: "none", Opacity: 1},
		HitZone:          Style{Class: "hit-zone", Fill: "#00c853", Stroke: "#00c853", StrokeWidth: 1, Dash: [2]float64{4, 2}, Opacity: 0.25},
		HitZoneColliding: Style{Class: "hit-zone hit-zone-colliding", Fill: "#ff1744", Stroke: "#ff1744", StrokeWidth: 1, Dash: [2]float64{4, 2}, Opacity: 0.45},
		Ball:             Style{Class: "ball", Fill: "#ffffff", Stroke: "none", Opacity: 1},
		Label:            Style{Class: "paddle-label", Fill: "#bdbdbd", Opacity: 1},
		OwnLabel:         Style{Class: "paddle-label paddle-label-own", Fill: "#ffd400", Opacity: 1},
		Score:            Style{Class: "score", Fill: "#ffffff", Opacity: 1},
		DebugLabel:       Style{Class: "debug-label", Fill: "#40c4ff", Opacity: 1},
		Banner:           Style{Class: "error-banner", Fill: "#ff1744", Opacity: 1},
	}
}
