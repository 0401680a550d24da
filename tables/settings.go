package tables

import "fmt"

// StrategyType selects where edges for one axis come from.
type StrategyType int

const (
	// StrategyLines derives edges from drawn lines and rectangles, including
	// rectangles that are filled but not stroked.
	StrategyLines StrategyType = iota
	// StrategyLinesStrict derives edges only from stroked lines and stroked
	// rectangle borders; fill-only rectangles do not contribute.
	StrategyLinesStrict
	// StrategyText synthesizes pseudo-edges from the alignment of
	// reconstructed words (borderless tables).
	StrategyText
)

func (s StrategyType) String() string {
	switch s {
	case StrategyLines:
		return "lines"
	case StrategyLinesStrict:
		return "lines_strict"
	case StrategyText:
		return "text"
	default:
		return "unknown"
	}
}

// SplitPunctuation configures word-break behavior at punctuation.
type SplitPunctuation struct {
	// All forces a break at every punctuation rune.
	All bool
	// Chars, when All is false, lists the exact codepoints that force a break.
	Chars string
}

// WordsExtractSettings controls character-to-word reconstruction (4.C).
type WordsExtractSettings struct {
	// XTolerance is the max horizontal gap within a word.
	XTolerance float64
	// YTolerance is the max baseline drift within a line.
	YTolerance float64
	// KeepBlankChars, if false, skips whitespace glyphs unless UseTextFlow preserves them.
	KeepBlankChars bool
	// UseTextFlow preserves source order rather than spatially re-sorting.
	UseTextFlow bool
	// TextReadInClockwise normalizes direction under rotation; true is the standard convention.
	TextReadInClockwise bool
	// SplitAtPunctuation, if non-nil, forces word breaks at punctuation.
	SplitAtPunctuation *SplitPunctuation
	// ExpandLigatures expands common ligatures into their decomposition.
	ExpandLigatures bool
	// NeedStrip trims leading/trailing whitespace from a word/cell text.
	NeedStrip bool
}

// DefaultWordsExtractSettings returns the spec-mandated defaults.
func DefaultWordsExtractSettings() WordsExtractSettings {
	return WordsExtractSettings{
		XTolerance:          3.0,
		YTolerance:          3.0,
		KeepBlankChars:      false,
		UseTextFlow:         false,
		TextReadInClockwise: true,
		SplitAtPunctuation:  nil,
		ExpandLigatures:     true,
		NeedStrip:           true,
	}
}

func (w WordsExtractSettings) validate() error {
	if w.XTolerance < 0 {
		return fmt.Errorf("x_tolerance must be >= 0, got %v", w.XTolerance)
	}
	if w.YTolerance < 0 {
		return fmt.Errorf("y_tolerance must be >= 0, got %v", w.YTolerance)
	}
	return nil
}

func (w WordsExtractSettings) clone() WordsExtractSettings {
	clone := w
	if w.SplitAtPunctuation != nil {
		sp := *w.SplitAtPunctuation
		clone.SplitAtPunctuation = &sp
	}
	return clone
}

// WordsExtractOption overrides one field of WordsExtractSettings.
type WordsExtractOption func(*WordsExtractSettings)

// WithXTolerance overrides XTolerance.
func WithXTolerance(v float64) WordsExtractOption {
	return func(s *WordsExtractSettings) { s.XTolerance = v }
}

// WithYTolerance overrides YTolerance.
func WithYTolerance(v float64) WordsExtractOption {
	return func(s *WordsExtractSettings) { s.YTolerance = v }
}

// WithKeepBlankChars overrides KeepBlankChars.
func WithKeepBlankChars(v bool) WordsExtractOption {
	return func(s *WordsExtractSettings) { s.KeepBlankChars = v }
}

// WithUseTextFlow overrides UseTextFlow.
func WithUseTextFlow(v bool) WordsExtractOption {
	return func(s *WordsExtractSettings) { s.UseTextFlow = v }
}

// WithSplitAtPunctuation overrides SplitAtPunctuation.
func WithSplitAtPunctuation(sp SplitPunctuation) WordsExtractOption {
	return func(s *WordsExtractSettings) { s.SplitAtPunctuation = &sp }
}

// NewWordsExtractSettings builds a validated WordsExtractSettings from the
// spec defaults overlaid with opts, collapsing the keyword-argument overlay
// pattern into a single builder.
func NewWordsExtractSettings(opts ...WordsExtractOption) (WordsExtractSettings, error) {
	s := DefaultWordsExtractSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return WordsExtractSettings{}, newSettingsError("words extract settings", err)
	}
	return s, nil
}

// TfSettings controls the full table-finding pipeline.
type TfSettings struct {
	VerticalStrategy   StrategyType
	HorizontalStrategy StrategyType

	SnapXTolerance float64
	SnapYTolerance float64
	JoinXTolerance float64
	JoinYTolerance float64

	EdgeMinLength           float64
	EdgeMinLengthPrefilter  float64
	IntersectionXTolerance  float64
	IntersectionYTolerance  float64

	MinWordsVertical   int
	MinWordsHorizontal int

	IncludeSingleCell bool
	// MinRows, when non-nil, discards tables with fewer rows.
	MinRows *int
	// MinColumns, when non-nil, discards tables with fewer columns.
	MinColumns *int

	TextSettings WordsExtractSettings
}

// DefaultTfSettings returns the spec-mandated defaults.
func DefaultTfSettings() TfSettings {
	return TfSettings{
		VerticalStrategy:       StrategyLinesStrict,
		HorizontalStrategy:     StrategyLinesStrict,
		SnapXTolerance:         3.0,
		SnapYTolerance:         3.0,
		JoinXTolerance:         3.0,
		JoinYTolerance:         3.0,
		EdgeMinLength:          3.0,
		EdgeMinLengthPrefilter: 1.0,
		IntersectionXTolerance: 3.0,
		IntersectionYTolerance: 3.0,
		MinWordsVertical:       3,
		MinWordsHorizontal:     1,
		IncludeSingleCell:      false,
		MinRows:                nil,
		MinColumns:             nil,
		TextSettings:           DefaultWordsExtractSettings(),
	}
}

func (t TfSettings) clone() TfSettings {
	clone := t
	if t.MinRows != nil {
		v := *t.MinRows
		clone.MinRows = &v
	}
	if t.MinColumns != nil {
		v := *t.MinColumns
		clone.MinColumns = &v
	}
	clone.TextSettings = t.TextSettings.clone()
	return clone
}

func (t TfSettings) validate() error {
	negatives := map[string]float64{
		"snap_x_tolerance":           t.SnapXTolerance,
		"snap_y_tolerance":           t.SnapYTolerance,
		"join_x_tolerance":           t.JoinXTolerance,
		"join_y_tolerance":           t.JoinYTolerance,
		"edge_min_length":            t.EdgeMinLength,
		"edge_min_length_prefilter":  t.EdgeMinLengthPrefilter,
		"intersection_x_tolerance":   t.IntersectionXTolerance,
		"intersection_y_tolerance":   t.IntersectionYTolerance,
	}
	for name, v := range negatives {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", name, v)
		}
	}
	if t.MinWordsVertical < 0 {
		return fmt.Errorf("min_words_vertical must be >= 0, got %d", t.MinWordsVertical)
	}
	if t.MinWordsHorizontal < 0 {
		return fmt.Errorf("min_words_horizontal must be >= 0, got %d", t.MinWordsHorizontal)
	}
	if t.MinRows != nil && *t.MinRows < 0 {
		return fmt.Errorf("min_rows must be >= 0, got %d", *t.MinRows)
	}
	if t.MinColumns != nil && *t.MinColumns < 0 {
		return fmt.Errorf("min_columns must be >= 0, got %d", *t.MinColumns)
	}
	return t.TextSettings.validate()
}

// TfSettingsOption overrides one field of TfSettings.
type TfSettingsOption func(*TfSettings)

// WithVerticalStrategy overrides VerticalStrategy.
func WithVerticalStrategy(s StrategyType) TfSettingsOption {
	return func(t *TfSettings) { t.VerticalStrategy = s }
}

// WithHorizontalStrategy overrides HorizontalStrategy.
func WithHorizontalStrategy(s StrategyType) TfSettingsOption {
	return func(t *TfSettings) { t.HorizontalStrategy = s }
}

// WithSnapTolerance overrides both snap tolerances.
func WithSnapTolerance(x, y float64) TfSettingsOption {
	return func(t *TfSettings) { t.SnapXTolerance = x; t.SnapYTolerance = y }
}

// WithJoinTolerance overrides both join tolerances.
func WithJoinTolerance(x, y float64) TfSettingsOption {
	return func(t *TfSettings) { t.JoinXTolerance = x; t.JoinYTolerance = y }
}

// WithEdgeMinLength overrides EdgeMinLength.
func WithEdgeMinLength(v float64) TfSettingsOption {
	return func(t *TfSettings) { t.EdgeMinLength = v }
}

// WithMinRows sets a minimum row-count filter.
func WithMinRows(v int) TfSettingsOption {
	return func(t *TfSettings) { t.MinRows = &v }
}

// WithMinColumns sets a minimum column-count filter.
func WithMinColumns(v int) TfSettingsOption {
	return func(t *TfSettings) { t.MinColumns = &v }
}

// WithIncludeSingleCell overrides IncludeSingleCell.
func WithIncludeSingleCell(v bool) TfSettingsOption {
	return func(t *TfSettings) { t.IncludeSingleCell = v }
}

// WithTextSettings overrides the embedded WordsExtractSettings wholesale.
func WithTextSettings(ws WordsExtractSettings) TfSettingsOption {
	return func(t *TfSettings) { t.TextSettings = ws }
}

// NewTfSettings builds a validated TfSettings from the spec defaults
// overlaid with opts. Returns a *TableError{Kind: ErrInvalidSettings} if
// any constraint is violated.
func NewTfSettings(opts ...TfSettingsOption) (TfSettings, error) {
	s := DefaultTfSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return TfSettings{}, newSettingsError("table finder settings", err)
	}
	return s.clone(), nil
}
