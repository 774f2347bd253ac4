package model

import (
	"testing"

	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
)

func TestStudioModel_NilSafe(t *testing.T) {
	var m *StudioModel
	m.SetRect(&selection.Rect{W: 1, H: 1})
	m.SetActivity("x")
	m.SetService(health.Sample{Status: health.StatusOnline})
	if m.Rect() != nil || m.Activity() != "" || m.Available() || m.Result() != nil {
		t.Fatalf("nil model should report zero values")
	}
}

func TestStudioModel_NotifiesChanges(t *testing.T) {
	m := NewStudioModel()
	var got []Change
	m.Subscribe(func(c Change) { got = append(got, c) })

	m.SetRect(&selection.Rect{X: 1, Y: 2, W: 3, H: 4})
	m.SetSource(&source.Image{Name: "a.png"}, &artifact.Handle{URL: "blob:a"})
	m.SetActivity("Extracting…")
	m.SetActivity("Extracting…")
	m.SetResult(&artifact.Handle{URL: "blob:r"})
	m.SetService(health.Sample{Status: health.StatusOffline})

	want := []Change{ChangeRect, ChangeSource, ChangeRect, ChangeActivity, ChangeResult, ChangeService}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("change %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if m.Rect() != nil {
		t.Fatalf("loading a source should clear the selection")
	}
	if m.Available() {
		t.Fatalf("offline sample reported as available")
	}
}

func TestStudioModel_RectIsCopied(t *testing.T) {
	m := NewStudioModel()
	r := &selection.Rect{X: 5, Y: 5, W: 10, H: 10}
	m.SetRect(r)
	r.W = 99
	got := m.Rect()
	got.H = 77
	if c := m.Rect(); c.W != 10 || c.H != 10 {
		t.Fatalf("model rect aliased caller memory: %+v", c)
	}
}
