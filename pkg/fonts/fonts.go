// Package fonts maps the card's fixed font family list onto embedded font
// data and builds font faces for the raster surface.
//
// The five selectable families are stand-ins named after the web fonts the
// card was designed with. Each resolves to an embedded Go font so rendering
// works without system fonts; a TTF file can override any family.
package fonts

import (
	"os"
	"slices"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/matzehuels/guidecard/pkg/errors"
)

// Selectable font families.
const (
	Arial          = "Arial"
	TimesNewRoman  = "Times New Roman"
	Georgia        = "Georgia"
	Impact         = "Impact"
	ComicSans      = "Comic Sans MS"
	DefaultFamily  = Arial
	CaptionFamily  = "caption"
	emojiFamilyKey = "emoji"
)

// Family is one entry of the selectable list.
type Family struct {
	Name  string
	Label string
	ttf   []byte
}

var families = []Family{
	{Name: Arial, Label: "Default", ttf: gobold.TTF},
	{Name: TimesNewRoman, Label: "Serif", ttf: gosmallcaps.TTF},
	{Name: Georgia, Label: "Elegant", ttf: gobolditalic.TTF},
	{Name: Impact, Label: "Heavy", ttf: gomonobold.TTF},
	{Name: ComicSans, Label: "Playful", ttf: gomediumitalic.TTF},
}

// Families returns the selectable families in display order.
func Families() []Family {
	return slices.Clone(families)
}

// Names returns the selectable family names in display order.
func Names() []string {
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.Name
	}
	return names
}

// Valid reports whether name is a selectable family.
func Valid(name string) bool {
	return slices.ContainsFunc(families, func(f Family) bool { return f.Name == name })
}

// Validate returns an INVALID_FONT error for unknown families.
func Validate(name string) error {
	if !Valid(name) {
		return errors.New(errors.ErrCodeInvalidFont, "unknown font family %q (must be one of: %v)", name, Names())
	}
	return nil
}

// Set resolves families to parsed fonts. The zero value serves the embedded
// fonts; Override and SetEmoji swap in TTF files. A Set is safe for
// concurrent use.
type Set struct {
	mu        sync.Mutex
	overrides map[string][]byte
	parsed    map[string]*truetype.Font
}

// NewSet returns a Set with no overrides.
func NewSet() *Set {
	return &Set{}
}

// Override replaces the font data for a family with the TTF at path.
func (s *Set) Override(family, path string) error {
	if err := Validate(family); err != nil {
		return err
	}
	return s.load(family, path)
}

// SetEmoji loads a TTF that covers emoji glyphs.
func (s *Set) SetEmoji(path string) error {
	return s.load(emojiFamilyKey, path)
}

// HasEmoji reports whether an emoji font was loaded.
func (s *Set) HasEmoji() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.overrides[emojiFamilyKey]
	return ok
}

func (s *Set) load(key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFont, err, "read font %s", path)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %s", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overrides == nil {
		s.overrides = make(map[string][]byte)
	}
	if s.parsed == nil {
		s.parsed = make(map[string]*truetype.Font)
	}
	s.overrides[key] = data
	s.parsed[key] = f
	return nil
}

// Face returns a face for family at size px. Unknown families fall back to
// the default; CaptionFamily resolves to the regular Go font.
func (s *Set) Face(family string, size float64) (font.Face, error) {
	f, err := s.font(family)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// EmojiFace returns a face for the emoji font, or nil when none is loaded.
func (s *Set) EmojiFace(size float64) font.Face {
	s.mu.Lock()
	f := s.parsed[emojiFamilyKey]
	s.mu.Unlock()
	if f == nil {
		return nil
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
}

func (s *Set) font(family string) (*truetype.Font, error) {
	if family == CaptionFamily {
		return parseEmbedded(CaptionFamily, goregular.TTF)
	}
	if !Valid(family) {
		family = DefaultFamily
	}
	s.mu.Lock()
	f := s.parsed[family]
	s.mu.Unlock()
	if f != nil {
		return f, nil
	}
	i := slices.IndexFunc(families, func(fam Family) bool { return fam.Name == family })
	return parseEmbedded(family, families[i].ttf)
}

// Embedded fonts are parsed once per process.
var (
	embeddedMu sync.Mutex
	embedded   = map[string]*truetype.Font{}
)

func parseEmbedded(key string, ttf []byte) (*truetype.Font, error) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()
	if f, ok := embedded[key]; ok {
		return f, nil
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font %s", key)
	}
	embedded[key] = f
	return f, nil
}
