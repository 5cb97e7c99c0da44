package tagscheme

// Ignore is the label value for positions excluded from span construction
// and scoring.
const Ignore = -100

// DefaultNoneTag is the textual label of the outside class.
const DefaultNoneTag = "O"

// kindByIndex is the class vocabulary order: the none tag first, then B, I,
// E and S. A scheme with n classes uses the first n entries.
var kindByIndex = [...]Kind{None, Begin, Inside, End, Single}

// Layout maps textual tags to class indices. The none tag may be spelled
// differently per corpus ("O", "NONE", ...) but always occupies index 0.
type Layout struct {
	NoneTag string
}

// NewLayout returns a layout for noneTag, defaulting to "O".
func NewLayout(noneTag string) Layout {
	if noneTag == "" {
		noneTag = DefaultNoneTag
	}
	return Layout{NoneTag: noneTag}
}

// Index returns the class index of a textual tag, or -1 if unknown.
func (l Layout) Index(text string) int {
	if text == l.noneTag() {
		return 0
	}
	switch text {
	case "B":
		return 1
	case "I":
		return 2
	case "E":
		return 3
	case "S":
		return 4
	default:
		return -1
	}
}

// IndexOf returns the class index of k.
func (l Layout) IndexOf(k Kind) int {
	if k == None {
		return 0
	}
	return l.Index(k.String())
}

// Text returns the textual tag of a class index. Unknown indices map to the
// none tag.
func (l Layout) Text(index int) string {
	if index <= 0 || index >= len(kindByIndex) {
		return l.noneTag()
	}
	return kindByIndex[index].String()
}

func (l Layout) noneTag() string {
	if l.NoneTag == "" {
		return DefaultNoneTag
	}
	return l.NoneTag
}
