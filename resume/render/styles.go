package render

import "strconv"

// RunStyle captures the inline run formatting of one document element.
type RunStyle struct {
	Bold   bool
	Italic bool
	// Size is in half-points.
	Size int
}

const (
	NameSize    = 32
	ContactSize = 20
	CaptionSize = 24
	BodySize    = 22
	MetaSize    = 20

	// RightTabStop is the right-aligned tab position for date columns, in twips.
	RightTabStop = 9000
	// SectionGap is the spacing before each spacer paragraph, in twips.
	SectionGap = 200
)

// StyleMap centralizes the formatting of each résumé element.
var StyleMap = map[string]RunStyle{
	"name":     {Bold: true, Size: NameSize},
	"contact":  {Size: ContactSize},
	"caption":  {Bold: true, Size: CaptionSize},
	"body":     {Size: BodySize},
	"roleLine": {Bold: true, Size: BodySize},
	"meta":     {Italic: true, Size: MetaSize},
}

// properties emits w:rPr children in schema order.
func (s RunStyle) properties() *xmlNode {
	rPr := w("rPr")
	if s.Bold {
		rPr.add(w("b"), w("bCs"))
	}
	if s.Italic {
		rPr.add(w("i"), w("iCs"))
	}
	if s.Size > 0 {
		size := strconv.Itoa(s.Size)
		rPr.add(w("sz", "val", size), w("szCs", "val", size))
	}
	if len(rPr.Children) == 0 {
		return nil
	}
	return rPr
}
