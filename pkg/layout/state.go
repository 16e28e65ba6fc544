package layout

import (
	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/fonts"
)

// Font size bounds, in px.
const (
	MinFontSize     = 20
	MaxFontSize     = 100
	FontSizeStep    = 2
	DefaultFontSize = 40
)

// ClampFontSize forces size into [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return max(MinFontSize, min(MaxFontSize, size))
}

// FontChoice is the family and size used for the main text.
type FontChoice struct {
	Family string `json:"family"`
	Size   int    `json:"size"`
}

// State is everything the user controls. Mutate it through the Set*
// methods so validation and clamping stay in one place.
type State struct {
	TopText    string         `json:"top_text"`
	MainText   string         `json:"main_text"`
	BottomText string         `json:"bottom_text"`
	Styles     StyleSelection `json:"styles"`
	Font       FontChoice     `json:"font"`
}

// NewState returns the initial state: emoji on, default font.
func NewState() *State {
	return &State{
		Styles: StyleSelection{Emoji: true},
		Font:   FontChoice{Family: fonts.DefaultFamily, Size: DefaultFontSize},
	}
}

// SetTopText sets the caption above the main text.
func (s *State) SetTopText(text string) error {
	if err := errors.ValidateText("top text", text); err != nil {
		return err
	}
	s.TopText = text
	return nil
}

// SetMainText sets the text that gets scattered.
func (s *State) SetMainText(text string) error {
	if err := errors.ValidateText("main text", text); err != nil {
		return err
	}
	s.MainText = text
	return nil
}

// SetBottomText sets the caption below the main text.
func (s *State) SetBottomText(text string) error {
	if err := errors.ValidateText("bottom text", text); err != nil {
		return err
	}
	s.BottomText = text
	return nil
}

// SetStyle switches one toggle on or off.
func (s *State) SetStyle(style Style, on bool) {
	s.Styles = s.Styles.With(style, on)
}

// SetStyles replaces the whole selection.
func (s *State) SetStyles(sel StyleSelection) {
	s.Styles = sel
}

// SetFontFamily selects a family from the fixed list.
func (s *State) SetFontFamily(family string) error {
	if err := fonts.Validate(family); err != nil {
		return err
	}
	s.Font.Family = family
	return nil
}

// SetFontSize clamps size into range; it never fails.
func (s *State) SetFontSize(size int) {
	s.Font.Size = ClampFontSize(size)
}

// IncreaseFontSize steps the size up by FontSizeStep.
func (s *State) IncreaseFontSize() {
	s.SetFontSize(s.Font.Size + FontSizeStep)
}

// DecreaseFontSize steps the size down by FontSizeStep.
func (s *State) DecreaseFontSize() {
	s.SetFontSize(s.Font.Size - FontSizeStep)
}

// CanGenerate reports whether an export may be triggered.
func (s *State) CanGenerate() bool {
	return s.MainText != ""
}
