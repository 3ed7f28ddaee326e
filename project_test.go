package projection

import (
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/wippyai/projection/errors"
)

const poisonTag = -0xDEAD

// sample marks its moved-from state with poisonTag.
type sample struct {
	tag  int
	name string
}

func (p *sample) Poison() {
	p.tag = poisonTag
	p.name = "poisoned"
}

func TestProject(t *testing.T) {
	x := sample{tag: 3, name: "three"}

	hole, view := Project(&x, func(p sample) string {
		return p.name + "/" + strconv.Itoa(p.tag)
	})

	if view != "three/3" {
		t.Errorf("view = %q, want three/3", view)
	}
	if x.tag != poisonTag {
		t.Errorf("location tag = %d, want poison %d during the window", x.tag, poisonTag)
	}
	if !hole.Refers(&x) {
		t.Error("hole does not refer to the projected location")
	}
	if hole.Initialized() {
		t.Error("hole initialized before Initialize")
	}

	hole.Initialize(sample{tag: 4, name: "four"})

	if !hole.Initialized() {
		t.Error("hole not marked initialized")
	}
	if x.tag != 4 || x.name != "four" {
		t.Errorf("location = %+v, want {4 four}", x)
	}
}

func TestProject_MovesValue(t *testing.T) {
	buf := []int{1, 2, 3}
	base := &buf[0]

	hole, view := Project(&buf, func(s []int) []int { return s })
	if buf != nil {
		t.Errorf("location still references the moved slice: %v", buf)
	}
	view[0] = 2
	hole.Initialize(view)

	if &buf[0] != base {
		t.Error("write-back does not reuse the moved backing array")
	}
	if buf[0] != 2 {
		t.Errorf("buf[0] = %d, want 2", buf[0])
	}
}

func TestProject_RoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, -7, 1 << 40} {
		x := v
		hole, s := Project(&x, strconv.Itoa)
		back, err := strconv.Atoi(s)
		if err != nil {
			t.Fatalf("Atoi(%q): %v", s, err)
		}
		hole.Initialize(back)
		if x != v {
			t.Errorf("round trip of %d gave %d", v, x)
		}
	}
}

func TestProject_NilLocation(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("recovered %v, want *errors.Error", r)
		}
		if err.Kind != errors.KindNilPointer || err.Phase != errors.PhaseProject {
			t.Errorf("got %v/%v, want project/nil_pointer", err.Phase, err.Kind)
		}
	}()
	Project[int, int](nil, func(v int) int { return v })
}

func TestProject_TransformPanics(t *testing.T) {
	x := sample{tag: 3}
	cause := stderrors.New("cannot transform")

	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("recovered %v, want *errors.Error", r)
		}
		if err.Kind != errors.KindTransformFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, errors.KindTransformFailed)
		}
		if !stderrors.Is(err, cause) {
			t.Error("transform panic value should be the cause")
		}
		if err.GoType != "projection.sample" || err.ViewType != "string" {
			t.Errorf("types = %q/%q", err.GoType, err.ViewType)
		}
		if x.tag != poisonTag {
			t.Errorf("location tag = %d, want poisoned placeholder", x.tag)
		}
	}()

	Project(&x, func(sample) string { panic(cause) })
	t.Fatal("Project returned after a panicking transform")
}

func TestHole_InitializeTwice(t *testing.T) {
	x := 1
	hole, _ := Project(&x, func(v int) int { return v })
	hole.Initialize(2)

	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok || err.Kind != errors.KindAlreadyInitialized {
			t.Fatalf("recovered %v, want already_initialized", r)
		}
		if x != 2 {
			t.Errorf("second Initialize overwrote the location: %d", x)
		}
	}()
	hole.Initialize(3)
}
