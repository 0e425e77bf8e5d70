package vkload

import (
	"slices"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := newOptions(nil)
	if !slices.Equal(o.candidates, DefaultCandidates()) {
		t.Errorf("candidates = %v, want %v", o.candidates, DefaultCandidates())
	}
	if _, ok := o.opener.(systemOpener); !ok {
		t.Errorf("opener = %T, want systemOpener", o.opener)
	}
	if _, ok := o.caller.(nativeCaller); !ok {
		t.Errorf("caller = %T, want nativeCaller", o.caller)
	}
}

func TestWithCandidatesCopies(t *testing.T) {
	names := []string{"a", "b"}
	o := newOptions([]Option{WithCandidates(names...)})
	names[0] = "changed"
	if o.candidates[0] != "a" {
		t.Errorf("candidates aliased caller slice: %v", o.candidates)
	}
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	o := newOptions([]Option{WithOpener(nil), WithCaller(nil)})
	if _, ok := o.opener.(systemOpener); !ok {
		t.Errorf("opener = %T, want systemOpener", o.opener)
	}
	if _, ok := o.caller.(nativeCaller); !ok {
		t.Errorf("caller = %T, want nativeCaller", o.caller)
	}
}

func TestOptionsApplyInOrder(t *testing.T) {
	d := newFakeDriver()
	opener := newFakeOpener()
	o := newOptions([]Option{
		WithCandidates("first"),
		WithCaller(d),
		WithOpener(opener),
		WithCandidates("second", "third"),
	})
	if !slices.Equal(o.candidates, []string{"second", "third"}) {
		t.Errorf("candidates = %v, want last WithCandidates to win", o.candidates)
	}
	if o.caller != Caller(d) {
		t.Errorf("caller = %T, want fake driver", o.caller)
	}
	if o.opener != Opener(opener) {
		t.Errorf("opener = %T, want fake opener", o.opener)
	}
}
