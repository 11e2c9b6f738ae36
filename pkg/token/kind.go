package token

// Kind classifies a token in the flat render stream.
type Kind uint16

// Token kinds. Names follow the markdown-it convention ("paragraph_open",
// "inline", ...) so that dumps and configuration read the same way.
const (
	KindInvalid Kind = iota

	// Block containers.
	KindParagraphOpen
	KindParagraphClose
	KindHeadingOpen
	KindHeadingClose
	KindBlockquoteOpen
	KindBlockquoteClose
	KindBulletListOpen
	KindBulletListClose
	KindOrderedListOpen
	KindOrderedListClose
	KindListItemOpen
	KindListItemClose
	KindTableOpen
	KindTableClose
	KindTheadOpen
	KindTheadClose
	KindTbodyOpen
	KindTbodyClose
	KindTrOpen
	KindTrClose
	KindThOpen
	KindThClose
	KindTdOpen
	KindTdClose
	KindFigureOpen
	KindFigureClose

	// Block leaves.
	KindInline
	KindCodeBlock
	KindFence
	KindHr
	KindHTMLBlock

	// Inline.
	KindText
	KindSoftbreak
	KindHardbreak
	KindCodeInline
	KindHTMLInline
	KindEmOpen
	KindEmClose
	KindStrongOpen
	KindStrongClose
	KindStrikeOpen
	KindStrikeClose
	KindLinkOpen
	KindLinkClose
	KindImage
	KindVideo
	KindAudio
	KindFigcaptionOpen
	KindFigcaptionClose

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	KindInvalid:          "invalid",
	KindParagraphOpen:    "paragraph_open",
	KindParagraphClose:   "paragraph_close",
	KindHeadingOpen:      "heading_open",
	KindHeadingClose:     "heading_close",
	KindBlockquoteOpen:   "blockquote_open",
	KindBlockquoteClose:  "blockquote_close",
	KindBulletListOpen:   "bullet_list_open",
	KindBulletListClose:  "bullet_list_close",
	KindOrderedListOpen:  "ordered_list_open",
	KindOrderedListClose: "ordered_list_close",
	KindListItemOpen:     "list_item_open",
	KindListItemClose:    "list_item_close",
	KindTableOpen:        "table_open",
	KindTableClose:       "table_close",
	KindTheadOpen:        "thead_open",
	KindTheadClose:       "thead_close",
	KindTbodyOpen:        "tbody_open",
	KindTbodyClose:       "tbody_close",
	KindTrOpen:           "tr_open",
	KindTrClose:          "tr_close",
	KindThOpen:           "th_open",
	KindThClose:          "th_close",
	KindTdOpen:           "td_open",
	KindTdClose:          "td_close",
	KindFigureOpen:       "figure_open",
	KindFigureClose:      "figure_close",
	KindInline:           "inline",
	KindCodeBlock:        "code_block",
	KindFence:            "fence",
	KindHr:               "hr",
	KindHTMLBlock:        "html_block",
	KindText:             "text",
	KindSoftbreak:        "softbreak",
	KindHardbreak:        "hardbreak",
	KindCodeInline:       "code_inline",
	KindHTMLInline:       "html_inline",
	KindEmOpen:           "em_open",
	KindEmClose:          "em_close",
	KindStrongOpen:       "strong_open",
	KindStrongClose:      "strong_close",
	KindStrikeOpen:       "s_open",
	KindStrikeClose:      "s_close",
	KindLinkOpen:         "link_open",
	KindLinkClose:        "link_close",
	KindImage:            "image",
	KindVideo:            "video",
	KindAudio:            "audio",
	KindFigcaptionOpen:   "figcaption_open",
	KindFigcaptionClose:  "figcaption_close",
}

// String returns the markdown-it style name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsMedia reports whether the kind is one of the embedded media kinds.
func (k Kind) IsMedia() bool {
	switch k {
	case KindImage, KindVideo, KindAudio:
		return true
	default:
		return false
	}
}
