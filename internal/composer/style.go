package composer

// StyleProfile captures the stylistic envelope generations are steered
// toward: Romantic-period solo piano in the manner of Chopin.
type StyleProfile struct {
	Composer          string   `json:"composer"`
	TypicalKeys       []string `json:"typicalKeys"`
	TempoRange        [2]int   `json:"tempoRange"`
	HarmonicMovements []string `json:"harmonicMovements"`
	RhythmPatterns    []string `json:"rhythmPatterns"`
	Dynamics          []string `json:"dynamics"`
}

// DefaultStyleProfile returns the built-in Chopin profile used both in the
// advisory prompt and the /api/style-profile response.
func DefaultStyleProfile() StyleProfile {
	return StyleProfile{
		Composer:    "Chopin",
		TypicalKeys: []string{"D minor", "C# minor", "E minor", "B minor", "A minor"},
		TempoRange:  [2]int{60, 80},
		HarmonicMovements: []string{
			"i-V-i", "i-iv-V-i", "i-VI-V-i", "i-iv-VII-V-i",
		},
		RhythmPatterns: []string{"rubato", "lyrical", "expressive"},
		Dynamics:       []string{"piano", "mezzo-piano", "mezzo-forte", "crescendo", "diminuendo"},
	}
}
