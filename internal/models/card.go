// internal/models/card.go
package models

import (
	"encoding/json"
	"fmt"
)

// Color is a card color. Wild cards carry ColorWild until a concrete color
// is chosen for them at play time.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorWild
)

// ConcreteColors are the four colors a wild play may choose from.
var ConcreteColors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

var colorNames = map[Color]string{
	ColorRed:    "red",
	ColorYellow: "yellow",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorWild:   "wild",
}

var colorsByName = map[string]Color{
	"red":    ColorRed,
	"yellow": ColorYellow,
	"green":  ColorGreen,
	"blue":   ColorBlue,
	"wild":   ColorWild,
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// IsConcrete reports whether c is one of the four playable colors.
func (c Color) IsConcrete() bool {
	return c == ColorRed || c == ColorYellow || c == ColorGreen || c == ColorBlue
}

func (c Color) MarshalJSON() ([]byte, error) {
	s, ok := colorNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown color %d", uint8(c))
	}
	return json.Marshal(s)
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	color, ok := colorsByName[s]
	if !ok {
		return fmt.Errorf("unknown color %q", s)
	}
	*c = color
	return nil
}

// ColorByName resolves a wire-format color name, e.g. "green".
func ColorByName(name string) (Color, error) {
	c, ok := colorsByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// Kind is a card kind. Number cards additionally carry a Number value 0-9.
type Kind uint8

const (
	KindNumber Kind = iota
	KindSkip
	KindReverse
	KindDrawTwo
	KindWild
	KindWildDrawFour
)

var kindNames = map[Kind]string{
	KindNumber:       "number",
	KindSkip:         "skip",
	KindReverse:      "reverse",
	KindDrawTwo:      "draw_two",
	KindWild:         "wild",
	KindWildDrawFour: "wild_draw_four",
}

var kindsByName = map[string]Kind{
	"number":         KindNumber,
	"skip":           KindSkip,
	"reverse":        KindReverse,
	"draw_two":       KindDrawTwo,
	"wild":           KindWild,
	"wild_draw_four": KindWildDrawFour,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown kind %d", uint8(k))
	}
	return json.Marshal(s)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, ok := kindsByName[s]
	if !ok {
		return fmt.Errorf("unknown kind %q", s)
	}
	*k = kind
	return nil
}

// Card is an immutable card value. Equality is structural: two cards are the
// same card iff color, kind and number all match. Number is meaningful only
// for KindNumber and is zero otherwise.
type Card struct {
	Color  Color `json:"color"`
	Kind   Kind  `json:"kind"`
	Number int   `json:"number,omitempty"`
}

// NumberCard builds a number card of the given color and face value.
func NumberCard(color Color, number int) Card {
	return Card{Color: color, Kind: KindNumber, Number: number}
}

// IsWild reports whether playing the card requires a color choice.
func (c Card) IsWild() bool {
	return c.Kind == KindWild || c.Kind == KindWildDrawFour
}

func (c Card) String() string {
	if c.Kind == KindNumber {
		return fmt.Sprintf("%s-%d", c.Color, c.Number)
	}
	if c.Color == ColorWild {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s-%s", c.Color, c.Kind)
}
