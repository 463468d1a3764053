package ebitenhost

import "testing"

// These tests avoid ebiten images, which need a running game loop.

func TestLayoutDefersResize(t *testing.T) {
	g := &Host{w: 800, h: 600, layoutW: 800, layoutH: 600}
	resized := false
	g.OnResize(func(w, h int) { resized = true })

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	if resized {
		t.Error("resize emitted from Layout")
	}
	if gw, gh := g.Size(); gw != 800 || gh != 600 {
		t.Errorf("size changed before Update: %dx%d", gw, gh)
	}
}

func TestApplyLayoutIgnoresEmptySize(t *testing.T) {
	g := &Host{w: 800, h: 600}
	g.Layout(0, 0)
	g.applyLayout()
	if gw, gh := g.Size(); gw != 800 || gh != 600 {
		t.Errorf("size = %dx%d after zero layout", gw, gh)
	}
}

func TestPausedSuffix(t *testing.T) {
	if pausedSuffix(false) != "" || pausedSuffix(true) == "" {
		t.Error("unexpected suffixes")
	}
}
