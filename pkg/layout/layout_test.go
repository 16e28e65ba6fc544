package layout

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/scatter"
)

func TestClampFontSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{5, 20},
		{19, 20},
		{20, 20},
		{41, 41},
		{100, 100},
		{500, 100},
		{-3, 20},
	}
	for _, tt := range tests {
		if got := ClampFontSize(tt.in); got != tt.want {
			t.Errorf("ClampFontSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFontSizeSteps(t *testing.T) {
	st := NewState()
	if st.Font.Size != DefaultFontSize {
		t.Fatalf("default size = %d, want %d", st.Font.Size, DefaultFontSize)
	}

	st.IncreaseFontSize()
	if st.Font.Size != DefaultFontSize+FontSizeStep {
		t.Errorf("after increase = %d", st.Font.Size)
	}

	st.SetFontSize(99)
	st.IncreaseFontSize()
	if st.Font.Size != MaxFontSize {
		t.Errorf("increase past max = %d, want %d", st.Font.Size, MaxFontSize)
	}

	st.SetFontSize(21)
	st.DecreaseFontSize()
	if st.Font.Size != MinFontSize {
		t.Errorf("decrease past min = %d, want %d", st.Font.Size, MinFontSize)
	}
}

func TestStateMutations(t *testing.T) {
	st := NewState()
	if st.CanGenerate() {
		t.Error("CanGenerate() = true with empty main text")
	}
	if !st.Styles.Emoji || st.Styles.Lines || st.Styles.Dynamic {
		t.Errorf("initial styles = %v, want emoji only", st.Styles)
	}

	if err := st.SetMainText("wechat_id"); err != nil {
		t.Fatalf("SetMainText() error: %v", err)
	}
	if !st.CanGenerate() {
		t.Error("CanGenerate() = false with main text")
	}

	if err := st.SetTopText("line\nbreak"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetTopText(control) error = %v, want INVALID_INPUT", err)
	}
	if err := st.SetBottomText("以上全都是英文字母"); err != nil {
		t.Errorf("SetBottomText() error: %v", err)
	}

	if err := st.SetFontFamily(fonts.Georgia); err != nil {
		t.Errorf("SetFontFamily(Georgia) error: %v", err)
	}
	if err := st.SetFontFamily("Wingdings"); !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("SetFontFamily(unknown) error = %v, want INVALID_FONT", err)
	}
	if st.Font.Family != fonts.Georgia {
		t.Errorf("family = %q after rejected change, want %q", st.Font.Family, fonts.Georgia)
	}

	st.SetStyle(StyleDynamic, true)
	st.SetStyle(StyleEmoji, false)
	if got := st.Styles.String(); got != "dynamic" {
		t.Errorf("styles = %q, want %q", got, "dynamic")
	}
}

func TestParseStyles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StyleSelection
		wantErr bool
	}{
		{"empty", "", StyleSelection{}, false},
		{"single", "emoji", StyleSelection{Emoji: true}, false},
		{"all", "lines,emoji,dynamic", StyleSelection{Lines: true, Emoji: true, Dynamic: true}, false},
		{"spaces and case", " Lines , DYNAMIC", StyleSelection{Lines: true, Dynamic: true}, false},
		{"duplicate", "emoji,emoji", StyleSelection{Emoji: true}, false},
		{"unknown", "emoji,sparkles", StyleSelection{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyles(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyles(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("ParseStyles(%q) code = %v", tt.input, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseStyles(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyleSelectionJSON(t *testing.T) {
	data, err := json.Marshal(StyleSelection{Lines: true, Dynamic: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["lines","dynamic"]` {
		t.Errorf("Marshal = %s", data)
	}

	var sel StyleSelection
	if err := json.Unmarshal([]byte(`["emoji"]`), &sel); err != nil {
		t.Fatal(err)
	}
	if sel != (StyleSelection{Emoji: true}) {
		t.Errorf("Unmarshal = %+v", sel)
	}
	if err := json.Unmarshal([]byte(`["glitter"]`), &sel); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Unmarshal(unknown) error = %v, want INVALID_STYLE", err)
	}
}

func TestComposeEmojiOnly(t *testing.T) {
	st := NewState()
	_ = st.SetMainText("abc123")
	st.SetStyles(StyleSelection{Emoji: true})

	tree := Compose(st, NewRand(1), DefaultCanvas)

	if len(tree.Chars) != 6 {
		t.Errorf("len(Chars) = %d, want 6", len(tree.Chars))
	}
	if len(tree.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(tree.Lines))
	}
	if n := len(tree.Emoji); n == 0 || n > scatter.EmojiSlots {
		t.Errorf("len(Emoji) = %d, want in [1, %d]", n, scatter.EmojiSlots)
	}
	for i, e := range tree.Emoji {
		if e.Motion != nil {
			t.Errorf("emoji %d has motion without dynamic style", i)
		}
	}
	if tree.Animated() {
		t.Error("Animated() = true without dynamic style")
	}
	if tree.Top != nil || tree.Bottom != nil {
		t.Error("captions present for empty caption text")
	}
}

func TestComposeDynamic(t *testing.T) {
	st := NewState()
	_ = st.SetMainText("wechat_id")
	_ = st.SetTopText("top")
	_ = st.SetBottomText("bottom")
	st.SetStyles(StyleSelection{Lines: true, Emoji: true, Dynamic: true})

	tree := Compose(st, NewRand(2), DefaultCanvas)

	if !tree.Animated() {
		t.Fatal("Animated() = false with dynamic style")
	}
	if len(tree.Lines) == 0 {
		t.Fatal("no lines with lines style")
	}
	for i, l := range tree.Lines {
		if l.Motion == nil || l.Motion.Name != MotionLineWave {
			t.Fatalf("line %d motion = %+v, want lineWave", i, l.Motion)
		}
		if l.Motion.Delay != time.Duration(i)*waveStagger {
			t.Errorf("line %d delay = %v", i, l.Motion.Delay)
		}
	}
	for i, e := range tree.Emoji {
		if e.Motion == nil || e.Motion.Name != MotionFloat {
			t.Fatalf("emoji %d motion = %+v, want float", i, e.Motion)
		}
		if e.Motion.Delay >= time.Second {
			t.Errorf("emoji %d delay = %v, want < 1s", i, e.Motion.Delay)
		}
	}
	if tree.Top == nil || tree.Bottom == nil {
		t.Fatal("captions missing")
	}
	for _, c := range []*Caption{tree.Top, tree.Bottom} {
		if c.Opacity < 0.2 || c.Opacity >= 0.4 {
			t.Errorf("caption opacity = %v, want in [0.2, 0.4)", c.Opacity)
		}
	}
	if tree.TextRegion.Y <= tree.Top.Box.Y+tree.Top.Box.H-1 {
		t.Errorf("text region %+v overlaps top caption %+v", tree.TextRegion, tree.Top.Box)
	}
}

func TestComposeRegenerates(t *testing.T) {
	st := NewState()
	_ = st.SetMainText("abc")
	rng := NewRand(3)

	a := Compose(st, rng, DefaultCanvas)
	b := Compose(st, rng, DefaultCanvas)
	if a.Chars[0] == b.Chars[0] && a.Chars[1] == b.Chars[1] {
		t.Error("repeated Compose produced the same characters")
	}
}

func TestComposeEmptyText(t *testing.T) {
	tree := Compose(NewState(), NewRand(4), DefaultCanvas)
	if len(tree.Chars) != 0 {
		t.Errorf("len(Chars) = %d, want 0", len(tree.Chars))
	}
}

func TestMotionProgress(t *testing.T) {
	m := Motion{Name: MotionFloat, Period: 3 * time.Second, Delay: 400 * time.Millisecond}

	if _, ok := m.Progress(200 * time.Millisecond); ok {
		t.Error("Progress before delay reported running")
	}
	p, ok := m.Progress(400*time.Millisecond + 1500*time.Millisecond)
	if !ok || math.Abs(p-0.5) > 1e-9 {
		t.Errorf("Progress(mid) = %v, %v; want 0.5, true", p, ok)
	}
	p, _ = m.Progress(400*time.Millisecond + 3*time.Second)
	if p != 0 {
		t.Errorf("Progress(full cycle) = %v, want 0", p)
	}
}

func TestNewRand(t *testing.T) {
	a, b := NewRand(5), NewRand(5)
	if a.Uint64() != b.Uint64() {
		t.Error("same seed produced different streams")
	}
	if NewRand(0).Uint64() == NewRand(0).Uint64() {
		t.Error("seed 0 repeated a stream; want a fresh seed per call")
	}
}
