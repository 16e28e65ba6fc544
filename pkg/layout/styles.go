package layout

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/guidecard/pkg/errors"
)

// Style is one background toggle.
type Style string

// Available style toggles.
const (
	StyleLines   Style = "lines"   // coloured Bezier noise
	StyleEmoji   Style = "emoji"   // scattered emoji markers
	StyleDynamic Style = "dynamic" // looping motion, exported as GIF
)

// AllStyles lists the toggles in display order.
var AllStyles = []Style{StyleLines, StyleEmoji, StyleDynamic}

// StyleSelection is the set of enabled toggles.
type StyleSelection struct {
	Lines   bool
	Emoji   bool
	Dynamic bool
}

// Has reports whether s is enabled.
func (sel StyleSelection) Has(s Style) bool {
	switch s {
	case StyleLines:
		return sel.Lines
	case StyleEmoji:
		return sel.Emoji
	case StyleDynamic:
		return sel.Dynamic
	}
	return false
}

// With returns a copy with s switched on or off.
func (sel StyleSelection) With(s Style, on bool) StyleSelection {
	switch s {
	case StyleLines:
		sel.Lines = on
	case StyleEmoji:
		sel.Emoji = on
	case StyleDynamic:
		sel.Dynamic = on
	}
	return sel
}

// Names returns the enabled toggles in display order.
func (sel StyleSelection) Names() []string {
	names := make([]string, 0, len(AllStyles))
	for _, s := range AllStyles {
		if sel.Has(s) {
			names = append(names, string(s))
		}
	}
	return names
}

func (sel StyleSelection) String() string {
	return strings.Join(sel.Names(), ",")
}

// ParseStyle validates a single toggle name.
func ParseStyle(name string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StyleLines, StyleEmoji, StyleDynamic:
		return s, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: lines, emoji, dynamic)", name)
}

// ParseStyles parses a comma-separated list. Empty input selects nothing.
func ParseStyles(s string) (StyleSelection, error) {
	var sel StyleSelection
	if strings.TrimSpace(s) == "" {
		return sel, nil
	}
	return ParseStyleList(strings.Split(s, ","))
}

// ParseStyleList parses individual toggle names.
func ParseStyleList(names []string) (StyleSelection, error) {
	var sel StyleSelection
	for _, n := range names {
		st, err := ParseStyle(n)
		if err != nil {
			return StyleSelection{}, err
		}
		sel = sel.With(st, true)
	}
	return sel, nil
}

// MarshalJSON encodes the selection as a list of names.
func (sel StyleSelection) MarshalJSON() ([]byte, error) {
	return json.Marshal(sel.Names())
}

// UnmarshalJSON accepts a list of names.
func (sel *StyleSelection) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "styles must be a list of names")
	}
	parsed, err := ParseStyleList(names)
	if err != nil {
		return err
	}
	*sel = parsed
	return nil
}
