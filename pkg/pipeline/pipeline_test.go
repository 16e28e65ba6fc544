package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidecard/pkg/errors"
	"github.com/matzehuels/guidecard/pkg/export"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
)

func testRunner() *Runner {
	r := NewRunner(nil, log.New(io.Discard))
	r.ExportOptions = []export.Option{
		export.WithSleeper(func(context.Context, time.Duration) error { return nil }),
	}
	return r
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"ok", Options{MainText: "hello"}, ""},
		{"empty main", Options{TopText: "top"}, errors.ErrCodeInvalidInput},
		{"control char", Options{MainText: "a\x07b"}, errors.ErrCodeInvalidInput},
		{"too long caption", Options{MainText: "x", BottomText: strings.Repeat("y", errors.MaxTextLength+1)}, errors.ErrCodeInvalidInput},
		{"unknown font", Options{MainText: "x", Font: "Papyrus"}, errors.ErrCodeInvalidFont},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	o := Options{MainText: "x"}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Font != fonts.DefaultFamily {
		t.Errorf("Font = %q", o.Font)
	}
	if o.FontSize != layout.DefaultFontSize {
		t.Errorf("FontSize = %d", o.FontSize)
	}
	if o.Canvas != layout.DefaultCanvas {
		t.Errorf("Canvas = %+v", o.Canvas)
	}
	if o.Logger != nil {
		t.Error("Logger set by defaults, want runner fallback")
	}
}

func TestStateClampsFontSize(t *testing.T) {
	for _, tc := range []struct{ in, want int }{{5, 20}, {500, 100}, {33, 33}} {
		o := Options{MainText: "x", FontSize: tc.in}
		st, err := o.State()
		if err != nil {
			t.Fatal(err)
		}
		if st.Font.Size != tc.want {
			t.Errorf("size %d -> %d, want %d", tc.in, st.Font.Size, tc.want)
		}
	}
}

func TestLayoutStyles(t *testing.T) {
	r := testRunner()

	tree, err := r.Layout(context.Background(), Options{MainText: "abc123", Styles: &layout.StyleSelection{Emoji: true}, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Chars) != 6 || len(tree.Lines) != 0 {
		t.Errorf("chars = %d, lines = %d", len(tree.Chars), len(tree.Lines))
	}
	if len(tree.Emoji) > 50 {
		t.Errorf("emoji = %d", len(tree.Emoji))
	}

	// nil styles keep the initial selection
	tree, err = r.Layout(context.Background(), Options{MainText: "abc", Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	if tree.Styles != layout.NewState().Styles {
		t.Errorf("styles = %v, want initial selection", tree.Styles)
	}
}

func TestLayoutSeedIsReproducible(t *testing.T) {
	r := testRunner()
	opts := Options{MainText: "wechat_id", Styles: &layout.StyleSelection{Lines: true, Emoji: true}, Seed: 42}

	a, err := r.Layout(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := r.Layout(context.Background(), opts)
	if len(a.Lines) != len(b.Lines) || a.Lines[0] != b.Lines[0] || a.Chars[0] != b.Chars[0] {
		t.Error("same seed produced different layouts")
	}
}

func TestExecuteEmptyTextDoesNotExport(t *testing.T) {
	dl := &export.BufferDownloader{}
	_, err := testRunner().Execute(context.Background(), Options{}, dl)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	if dl.Data != nil {
		t.Error("export triggered with empty main text")
	}
}

func TestExecuteStatic(t *testing.T) {
	dl := &export.BufferDownloader{}
	res, err := testRunner().Execute(context.Background(), Options{
		MainText: "abc123",
		Styles:   &layout.StyleSelection{Emoji: true},
		Seed:     1,
	}, dl)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Export.Outcome != export.OutcomeDownloaded || dl.Name != "xhs-image.png" {
		t.Errorf("outcome = %v, file = %q", res.Export.Outcome, dl.Name)
	}
}

func TestExecuteAnimated(t *testing.T) {
	dl := &export.BufferDownloader{}
	res, err := testRunner().Execute(context.Background(), Options{
		MainText: "wechat_id",
		Styles:   &layout.StyleSelection{Lines: true, Emoji: true, Dynamic: true},
		Seed:     1,
	}, dl)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Export.Frames != export.FrameCount {
		t.Errorf("frames = %d", res.Export.Frames)
	}
	if dl.Name != "xhs-image.gif" || !strings.HasPrefix(string(dl.Data), "GIF89a") {
		t.Errorf("download = %q, %d bytes", dl.Name, len(dl.Data))
	}
}

func TestRequestLoggerOverridesRunner(t *testing.T) {
	var runnerBuf, reqBuf bytes.Buffer
	r := NewRunner(nil, log.New(&runnerBuf))
	r.Logger.SetLevel(log.DebugLevel)
	r.ExportOptions = testRunner().ExportOptions
	reqLogger := log.New(&reqBuf)
	reqLogger.SetLevel(log.DebugLevel)

	_, err := r.Execute(context.Background(), Options{MainText: "abc", Seed: 3, Logger: reqLogger}, &export.BufferDownloader{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"composed card", "exported card"} {
		if !strings.Contains(reqBuf.String(), want) {
			t.Errorf("request log missing %q:\n%s", want, reqBuf.String())
		}
	}
	if runnerBuf.Len() != 0 {
		t.Errorf("runner logger used despite request logger:\n%s", runnerBuf.String())
	}

	_, _ = r.Layout(context.Background(), Options{MainText: "abc", Seed: 3})
	if !strings.Contains(runnerBuf.String(), "composed card") {
		t.Error("runner logger not used without a request logger")
	}
}
