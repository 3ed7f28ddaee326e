package main

import (
	"context"
	"slices"
	"strconv"

	"github.com/wippyai/projection"
	"github.com/wippyai/projection/cow"
	"github.com/wippyai/projection/errors"
	"github.com/wippyai/projection/linmem"
	"github.com/wippyai/projection/tagged"
)

type strategy struct {
	name   string
	mutate func(p *tagged.Projectable, body func(*tagged.StringTagged) error) error
}

func getSet(p *tagged.Projectable, body func(*tagged.StringTagged) error) error {
	s := p.StringTagged()
	if err := body(&s); err != nil {
		return err
	}
	return p.SetStringTagged(s)
}

var strategies = []strategy{
	{name: "get/set", mutate: getSet},
	{name: "naive modify", mutate: (*tagged.Projectable).ModifyNaive},
	{name: "projection", mutate: (*tagged.Projectable).Modify},
}

func findStrategy(name string) (strategy, bool) {
	for _, st := range strategies {
		if st.name == name {
			return st, true
		}
	}
	return strategy{}, false
}

type result struct {
	err        error
	strategy   string
	content    []int
	tag        int
	copies     int64
	duplicated bool
}

// run applies the scenario as two separate accesses, the tag first and the
// content second, and reports whether the content storage moved.
func (st strategy) run(sc Scenario) result {
	p := tagged.New(sc.Tag, sc.Content...)
	before := p.Content.BaseAddress()
	copies := cow.Duplications()

	res := result{strategy: st.name}
	res.err = st.mutate(&p, func(s *tagged.StringTagged) error {
		s.Tag += sc.Suffix
		return nil
	})
	if res.err == nil {
		res.err = st.mutate(&p, func(s *tagged.StringTagged) error {
			if sc.Index < 0 || sc.Index >= s.Content.Len() {
				return errors.OutOfBounds(errors.PhaseBody, []string{"content"}, sc.Index, s.Content.Len())
			}
			s.Content.Update(sc.Index, func(v int) int { return v + sc.Delta })
			return nil
		})
	}

	res.tag, res.content = p.Values()
	res.duplicated = p.Content.BaseAddress() != before
	res.copies = cow.Duplications() - copies
	return res
}

func runAll(sc Scenario) []result {
	out := make([]result, 0, len(strategies))
	for _, st := range strategies {
		out = append(out, st.run(sc))
	}
	return out
}

// expected returns the tag and content every strategy should produce.
func (s Scenario) expected() (int, []int, error) {
	tag, err := strconv.Atoi(strconv.Itoa(s.Tag) + s.Suffix)
	if err != nil {
		return 0, nil, err
	}
	content := slices.Clone(s.Content)
	content[s.Index] += s.Delta
	return tag, content, nil
}

type linearResult struct {
	before   int64
	after    int64
	window   []byte
	poisoned bool
}

var decimal64 = projection.Funcs[int64, string]{
	To: func(v int64) string { return strconv.FormatInt(v, 10) },
	From: func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	},
}

// runLinear stores the scenario tag in a sandboxed linear memory and
// appends the suffix through a slot projection, capturing the raw bytes
// seen during the window.
func runLinear(ctx context.Context, sc Scenario) (linearResult, error) {
	var res linearResult

	sb, err := linmem.NewSandbox(ctx, 1)
	if err != nil {
		return res, err
	}
	defer sb.Close(ctx)

	slot, err := linmem.NewSlot(sb.Memory(), 0, linmem.Int64)
	if err != nil {
		return res, err
	}
	if err := slot.Store(int64(sc.Tag)); err != nil {
		return res, err
	}
	res.before = int64(sc.Tag)

	err = linmem.Modify(slot, decimal64, func(s *string) error {
		raw, err := sb.Memory().Read(slot.Offset(), linmem.Int64.Size())
		if err != nil {
			return err
		}
		res.window = slices.Clone(raw)
		*s += sc.Suffix
		return nil
	})
	if err != nil {
		return res, err
	}

	res.poisoned = len(res.window) > 0
	for _, b := range res.window {
		if b != linmem.PoisonByte {
			res.poisoned = false
		}
	}

	res.after, err = slot.Load()
	return res, err
}
