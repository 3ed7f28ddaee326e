// Package tagged demonstrates mutable projections on a small record whose
// integer tag is exposed as text.
//
// Projectable offers three ways to mutate its StringTagged view: a plain
// getter/setter pair, a naive read-modify-write (ModifyNaive), and Modify,
// which goes through projection.Modify. Only Modify leaves the content
// buffer's storage in place.
package tagged

import (
	"strconv"

	"github.com/wippyai/projection"
	"github.com/wippyai/projection/cow"
	"github.com/wippyai/projection/errors"
)

// Projectable is a record with an integer tag and copy-on-write content.
type Projectable struct {
	Content cow.Buffer[int]
	Tag     int
}

// StringTagged is Projectable with its tag represented as a string.
type StringTagged struct {
	Tag     string
	Content cow.Buffer[int]
}

// StringTagging moves a Projectable into its StringTagged form and back.
// The content buffer changes hands without gaining an owner.
var StringTagging projection.Projection[Projectable, StringTagged] = projection.Funcs[Projectable, StringTagged]{
	To: func(p Projectable) StringTagged {
		return StringTagged{Tag: strconv.Itoa(p.Tag), Content: p.Content}
	},
	From: FromStringTagged,
}

// New creates a Projectable with the given tag and content.
func New(tag int, content ...int) Projectable {
	return Projectable{Tag: tag, Content: cow.New(content...)}
}

// NewStringTagged returns the StringTagged form of p. The result shares
// p's content as a second owner.
func NewStringTagged(p Projectable) StringTagged {
	return StringTagged{Tag: strconv.Itoa(p.Tag), Content: p.Content.Share()}
}

// FromStringTagged converts s back, taking over its content. It fails when
// s.Tag is not the decimal representation of an integer.
func FromStringTagged(s StringTagged) (Projectable, error) {
	tag, err := strconv.Atoi(s.Tag)
	if err != nil {
		return Projectable{}, errors.New(errors.PhaseRebuild, errors.KindInvalidData).
			Path("tag").
			GoType("int").
			ViewType("string").
			Value(s.Tag).
			Cause(err).
			Detail("tag %q is not an integer", s.Tag).
			Build()
	}
	return Projectable{Tag: tag, Content: s.Content}, nil
}

// StringTagged returns the string-tagged view of p.
func (p Projectable) StringTagged() StringTagged {
	return NewStringTagged(p)
}

// SetStringTagged replaces p with the value s represents. It takes over s's
// content. On error p is unchanged.
func (p *Projectable) SetStringTagged(s StringTagged) error {
	v, err := FromStringTagged(s)
	if err != nil {
		return err
	}
	p.Content.Release()
	*p = v
	return nil
}

// ModifyNaive reads the view through the getter, lets body mutate it, and
// writes it back through the setter. The getter leaves p as a second owner
// of the content, so any content mutation in body copies the buffer.
func (p *Projectable) ModifyNaive(body func(*StringTagged) error) error {
	s := p.StringTagged()
	if err := body(&s); err != nil {
		s.Content.Release()
		return err
	}
	return p.SetStringTagged(s)
}

// Modify lets body mutate the string-tagged view of p in place. The content
// buffer is never duplicated by the projection itself.
func (p *Projectable) Modify(body func(*StringTagged) error) error {
	return projection.Modify(p, StringTagging, body)
}

// Values returns the tag and a copy of the content.
func (p Projectable) Values() (int, []int) {
	return p.Tag, p.Content.Values()
}
