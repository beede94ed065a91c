package ui

import "github.com/dustin/go-humanize"

type textKind uint8

const (
	textStatic textKind = iota
	textDynamic
)

// Text is a menu entry's content: either a fixed string or a label followed
// by a live integer read through a reference at composite time.
type Text struct {
	kind   textKind
	static string
	label  string
	ref    *int
}

// StaticText returns fixed entry text.
func StaticText(s string) Text { return Text{kind: textStatic, static: s} }

// DynamicText returns entry text that renders label followed by the current
// value of *ref, with thousands separators.
func DynamicText(label string, ref *int) Text {
	if ref == nil {
		panic("ui: DynamicText requires a value reference")
	}
	return Text{kind: textDynamic, label: label, ref: ref}
}

// IsDynamic reports whether the text changes with its source value.
func (t Text) IsDynamic() bool { return t.kind == textDynamic }

// Resolve returns the string to draw now.
func (t Text) Resolve() string {
	if t.kind == textDynamic {
		return t.label + humanize.Comma(int64(*t.ref))
	}
	return t.static
}
