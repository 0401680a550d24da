package tables

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/tabula/model"
	"golang.org/x/text/unicode/norm"
)

// ligatures is the full decomposition table recovered from the reference
// implementation (SUPPLEMENTED FEATURES), superseding the illustrative
// ﬁ/ﬂ-only pair spec.md mentions.
var ligatures = map[rune]string{
	'ﬀ': "ff",
	'ﬃ': "ffi",
	'ﬄ': "ffl",
	'ﬁ': "fi",
	'ﬂ': "fl",
	'ﬆ': "st",
	'ﬅ': "st",
}

// Word is a contiguous text run reconstructed from Chars on one baseline
// under the active reading direction (4.C).
type Word struct {
	Chars []Char
	BBox  model.BBox
	Text  string
}

// rotationBucket maps an arbitrary rotation to one of the four canonical
// quadrants the reconstruction algorithm dispatches on.
func rotationBucket(deg float64) int {
	norm := int(deg) % 360
	if norm < 0 {
		norm += 360
	}
	switch {
	case norm >= 315 || norm < 45:
		return 0
	case norm >= 45 && norm < 135:
		return 90
	case norm >= 135 && norm < 225:
		return 180
	default:
		return 270
	}
}

// WordExtractor reconstructs words from characters per 4.C.
type WordExtractor struct {
	Settings WordsExtractSettings
}

// NewWordExtractor constructs an extractor with the given settings.
func NewWordExtractor(settings WordsExtractSettings) *WordExtractor {
	return &WordExtractor{Settings: settings}
}

// Extract groups chars into words: by rotation class, sorted into a
// canonical reading order per bucket, then segmented wherever the gap
// exceeds tolerance, a baseline shift exceeds tolerance, or a configured
// split punctuation is hit.
func (we *WordExtractor) Extract(chars []Char) []Word {
	settings := we.Settings

	buckets := make(map[int][]Char)
	var order []int
	for _, c := range chars {
		if !isFiniteBBox(c.BBox) {
			continue
		}
		if !settings.KeepBlankChars && isBlankChar(c) {
			continue
		}
		b := rotationBucket(c.Rotation)
		if _, ok := buckets[b]; !ok {
			order = append(order, b)
		}
		buckets[b] = append(buckets[b], c)
	}
	sort.Ints(order)

	var words []Word
	for _, b := range order {
		group := buckets[b]
		if !settings.UseTextFlow {
			sortCharsForBucket(group, b, settings.TextReadInClockwise)
		}
		words = append(words, we.segmentWords(group, b)...)
	}
	return words
}

// isBlankChar reports whether c is whitespace (including the zero rune
// for unmapped glyphs that decoded to nothing).
func isBlankChar(c Char) bool {
	if !c.Valid {
		return false
	}
	return unicode.IsSpace(c.Rune)
}

// sortCharsForBucket orders chars within one rotation bucket into reading
// order: primarily by line band (the axis orthogonal to reading
// direction), then along the reading axis. Clockwise vs counterclockwise
// reading flips the secondary sort direction for the 90/270 buckets.
func sortCharsForBucket(chars []Char, bucket int, clockwise bool) {
	lineKey := func(c Char) float64 {
		switch bucket {
		case 0, 180:
			return c.BBox.Top()
		default:
			return c.BBox.Left()
		}
	}
	axisKey := func(c Char) float64 {
		switch bucket {
		case 0:
			return c.BBox.Left()
		case 180:
			return -c.BBox.Left()
		case 90:
			if clockwise {
				return c.BBox.Top()
			}
			return -c.BBox.Top()
		default: // 270
			if clockwise {
				return -c.BBox.Top()
			}
			return c.BBox.Top()
		}
	}
	sort.SliceStable(chars, func(i, j int) bool {
		li, lj := lineKey(chars[i]), lineKey(chars[j])
		if li != lj {
			return li > lj // top-to-bottom screen order (higher Top first)
		}
		return axisKey(chars[i]) < axisKey(chars[j])
	})
}

func (we *WordExtractor) segmentWords(chars []Char, bucket int) []Word {
	var words []Word
	var current []Char

	flush := func() {
		if len(current) == 0 {
			return
		}
		words = append(words, we.buildWord(current))
		current = nil
	}

	for _, c := range chars {
		if len(current) > 0 && we.charBeginsNewWord(current[len(current)-1], c, bucket) {
			flush()
		}
		current = append(current, c)
		if we.splitsAfter(c) {
			flush()
		}
	}
	flush()
	return words
}

// charBeginsNewWord decides whether c starts a new word relative to prev,
// using the tolerance appropriate to the reading axis of this rotation
// bucket (4.C).
func (we *WordExtractor) charBeginsNewWord(prev, c Char, bucket int) bool {
	s := we.Settings
	var gap, drift float64
	switch bucket {
	case 0:
		gap = c.BBox.Left() - prev.BBox.Right()
		drift = absf(c.BBox.Bottom() - prev.BBox.Bottom())
	case 180:
		gap = prev.BBox.Left() - c.BBox.Right()
		drift = absf(c.BBox.Bottom() - prev.BBox.Bottom())
	case 90, 270:
		gap = c.BBox.Bottom() - prev.BBox.Top()
		if gap < 0 {
			gap = prev.BBox.Bottom() - c.BBox.Top()
		}
		drift = absf(c.BBox.Left() - prev.BBox.Left())
	}
	if gap > s.XTolerance {
		return true
	}
	if drift > s.YTolerance {
		return true
	}
	return we.splitsBefore(c)
}

func (we *WordExtractor) splitsBefore(c Char) bool {
	sp := we.Settings.SplitAtPunctuation
	if sp == nil || !c.Valid {
		return false
	}
	if sp.All {
		return isPunctuation(c.Rune)
	}
	return strings.ContainsRune(sp.Chars, c.Rune)
}

func (we *WordExtractor) splitsAfter(c Char) bool {
	return we.splitsBefore(c)
}

func isPunctuation(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func (we *WordExtractor) buildWord(chars []Char) Word {
	bbox := chars[0].BBox
	var sb strings.Builder
	for i, c := range chars {
		if i > 0 {
			bbox = bbox.Union(c.BBox)
		}
		if !c.Valid {
			continue
		}
		if we.Settings.ExpandLigatures {
			if expansion, ok := ligatures[c.Rune]; ok {
				sb.WriteString(expansion)
				continue
			}
		}
		sb.WriteRune(c.Rune)
	}

	text := sb.String()
	text = norm.NFC.String(text)
	if we.Settings.NeedStrip {
		text = strings.TrimSpace(text)
	}

	return Word{Chars: chars, BBox: bbox, Text: text}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
