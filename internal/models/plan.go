package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section is one named span of the structural plan: a chord-degree sequence,
// a measure count, and the intended melodic contour.
type Section struct {
	Name           string   `json:"-"`
	Chords         []string `json:"chords"`
	Measures       int      `json:"measures"`
	MelodicContour string   `json:"melodic_contour"`
}

// StructuralPlan is the blueprint consumed by the composer: key, tempo, and
// an ordered sequence of sections. The advisory service supplies it as JSON;
// section order in the JSON object is significant and preserved, which is
// why Sections is a slice rather than a map.
type StructuralPlan struct {
	Key      string    `json:"key"`
	Tempo    int       `json:"tempo"`
	Sections []Section `json:"sections"`
}

// UnmarshalJSON decodes the plan while keeping the sections in the order
// they appear in the JSON object.
func (p *StructuralPlan) UnmarshalJSON(data []byte) error {
	var head struct {
		Key      string          `json:"key"`
		Tempo    int             `json:"tempo"`
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	p.Key = head.Key
	p.Tempo = head.Tempo
	p.Sections = nil

	if len(head.Sections) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(head.Sections))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("sections: expected string key")
		}

		var section Section
		if err := dec.Decode(&section); err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		section.Name = name
		p.Sections = append(p.Sections, section)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON emits sections as an ordered JSON object, matching the wire
// shape the advisory service produces.
func (p *StructuralPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"key":`)
	keyJSON, err := json.Marshal(p.Key)
	if err != nil {
		return nil, err
	}
	buf.Write(keyJSON)
	fmt.Fprintf(&buf, `,"tempo":%d,"sections":{`, p.Tempo)
	for i, s := range p.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')
		sectionJSON, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		buf.Write(sectionJSON)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Validate reports whether the plan has the fields the composer requires.
// A failing plan is replaced by the fallback, never surfaced as fatal.
func (p *StructuralPlan) Validate() error {
	if p.Key == "" {
		return fmt.Errorf("plan missing key")
	}
	if len(p.Sections) == 0 {
		return fmt.Errorf("plan missing sections")
	}
	return nil
}

// FallbackPlan is the deterministic built-in plan used whenever the advisory
// service is unavailable or returns a structurally invalid payload. It is
// part of the generation contract, not an optional nicety.
func FallbackPlan() *StructuralPlan {
	return &StructuralPlan{
		Key:   "D minor",
		Tempo: 70,
		Sections: []Section{
			{Name: "intro", Chords: []string{"i", "iv", "V", "i"}, Measures: 4, MelodicContour: "descending"},
			{Name: "main_theme", Chords: []string{"i", "VI", "iv", "V", "i"}, Measures: 8, MelodicContour: "arch"},
			{Name: "variation", Chords: []string{"i", "iv", "VII", "V", "i"}, Measures: 8, MelodicContour: "ascending"},
			{Name: "resolution", Chords: []string{"i", "V", "i"}, Measures: 4, MelodicContour: "descending"},
		},
	}
}
