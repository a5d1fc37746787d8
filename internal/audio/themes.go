package audio

// Note names used by the built-in themes.
const (
	rest = 0
	c3   = 48
	d3   = 50
	e3   = 52
	f3   = 53
	g3   = 55
	a3   = 57
	c4   = 60
	d4   = 62
	e4   = 64
	f4   = 65
	g4   = 67
	a4   = 69
	b4   = 71
	c5   = 72
	d5   = 74
	e5   = 76
)

// ThemeLeap is the starship soundtrack: a bouncy square-wave lead over a
// triangle bass.
var ThemeLeap = Theme{
	Name:  "leap",
	Tempo: 112,
	Voices: []Voice{
		{
			Wave: WaveSquare,
			Gain: 0.18,
			Notes: []Note{
				{e4, 0.5}, {g4, 0.5}, {c5, 1}, {b4, 0.5}, {g4, 0.5}, {e4, 1},
				{f4, 0.5}, {a4, 0.5}, {d5, 1}, {c5, 0.5}, {a4, 0.5}, {f4, 1},
				{e4, 0.5}, {g4, 0.5}, {c5, 0.5}, {e5, 0.5}, {d5, 1}, {rest, 1},
				{c5, 0.5}, {b4, 0.5}, {a4, 0.5}, {g4, 0.5}, {c5, 2},
			},
		},
		{
			Wave: WaveTriangle,
			Gain: 0.35,
			Notes: []Note{
				{c3, 1}, {g3, 1}, {c3, 1}, {g3, 1},
				{f3, 1}, {c4, 1}, {f3, 1}, {c4, 1},
				{c3, 1}, {g3, 1}, {e3, 1}, {g3, 1},
				{f3, 1}, {g3, 1}, {c3, 2},
			},
		},
	},
}

// ThemeOrbit is the rocket soundtrack: a slower sine melody over a pulsing
// square bass.
var ThemeOrbit = Theme{
	Name:  "orbit",
	Tempo: 96,
	Voices: []Voice{
		{
			Wave: WaveSine,
			Gain: 0.3,
			Notes: []Note{
				{a4, 1}, {e4, 1}, {c5, 1.5}, {b4, 0.5},
				{a4, 1}, {g4, 1}, {e4, 2},
				{d4, 1}, {f4, 1}, {a4, 1.5}, {g4, 0.5},
				{e4, 1}, {d4, 1}, {c4, 2},
			},
		},
		{
			Wave: WaveSquare,
			Gain: 0.08,
			Notes: []Note{
				{a3, 0.5}, {rest, 0.5}, {a3, 0.5}, {rest, 0.5},
				{f3, 0.5}, {rest, 0.5}, {f3, 0.5}, {rest, 0.5},
				{d3, 0.5}, {rest, 0.5}, {d3, 0.5}, {rest, 0.5},
				{e3, 0.5}, {rest, 0.5}, {e3, 0.5}, {rest, 0.5},
			},
		},
	},
}
