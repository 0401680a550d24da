package tables

import "testing"

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"abc\ndef": {"abc", "def"},
		"abc\n":    {"abc"},
		"":         nil,
		"solo":     {"solo"},
	}
	for in, want := range cases {
		got := splitLines(in)
		if len(got) != len(want) {
			t.Fatalf("splitLines(%q) = %v, want %v", in, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("splitLines(%q) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestSynthesizeOCRChars_SingleLine(t *testing.T) {
	chars := synthesizeOCRChars("ab", 90, 30)
	if len(chars) != 2 {
		t.Fatalf("got %d chars, want 2", len(chars))
	}
	if chars[0].BBox.X != 0 || chars[0].BBox.Y != 15 || chars[0].BBox.Width != 30 || chars[0].BBox.Height != 12 {
		t.Errorf("chars[0].BBox = %+v, want {0 15 30 12}", chars[0].BBox)
	}
	if chars[1].BBox.X != 30 || chars[1].BBox.Y != 15 {
		t.Errorf("chars[1].BBox = %+v, want X=30 Y=15", chars[1].BBox)
	}
	if chars[0].Rune != 'a' || chars[1].Rune != 'b' {
		t.Errorf("got runes %c,%c, want a,b", chars[0].Rune, chars[1].Rune)
	}
}

func TestSynthesizeOCRChars_MultipleLinesStackDownward(t *testing.T) {
	chars := synthesizeOCRChars("ab\ncd", 90, 30)
	if len(chars) != 4 {
		t.Fatalf("got %d chars, want 4", len(chars))
	}
	// First line sits above the second (higher Y, PDF coordinates grow upward).
	if chars[0].BBox.Y != 20 {
		t.Errorf("first line Y = %v, want 20", chars[0].BBox.Y)
	}
	if chars[2].BBox.Y != 10 {
		t.Errorf("second line Y = %v, want 10", chars[2].BBox.Y)
	}
	if chars[2].Rune != 'c' || chars[3].Rune != 'd' {
		t.Errorf("got runes %c,%c, want c,d", chars[2].Rune, chars[3].Rune)
	}
}

func TestSynthesizeOCRChars_EmptyInput(t *testing.T) {
	if got := synthesizeOCRChars("", 100, 100); got != nil {
		t.Errorf("got %v, want nil for empty recognized text", got)
	}
}

func TestPDFPageSource_OcrFallbackRequiresRenderer(t *testing.T) {
	p := &PDFPageSource{width: 100, height: 100, state: PageLoaded}
	if _, err := p.ocrFallback(); err == nil {
		t.Error("expected an error when no PageRenderer is configured")
	}
}

func TestPDFPageSource_SetRenderer(t *testing.T) {
	p := &PDFPageSource{}
	called := false
	p.SetRenderer(func() ([]byte, error) {
		called = true
		return []byte("fake-image"), nil
	})
	if p.renderer == nil {
		t.Fatal("expected renderer to be set")
	}
	if _, err := p.renderer(); err != nil {
		t.Fatalf("renderer() error = %v", err)
	}
	if !called {
		t.Error("expected the renderer function to be invoked")
	}
}
