package alert

// BannerKind says what the single banner slot is currently showing
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerUrgent
	BannerWindow
)

func (k BannerKind) String() string {
	switch k {
	case BannerUrgent:
		return "urgent"
	case BannerWindow:
		return "window"
	default:
		return "none"
	}
}

// Banner is the content of the banner slot
type Banner struct {
	Kind    BannerKind
	Message string
}

// Visible reports whether anything should be drawn
func (b Banner) Visible() bool {
	return b.Kind != BannerNone
}

// Resolve picks the banner for one refresh cycle. An empty message means the
// source has nothing to say. An urgency alert wins over the window notice.
func Resolve(urgent, notice string) Banner {
	switch {
	case urgent != "":
		return Banner{Kind: BannerUrgent, Message: urgent}
	case notice != "":
		return Banner{Kind: BannerWindow, Message: notice}
	default:
		return Banner{Kind: BannerNone}
	}
}
