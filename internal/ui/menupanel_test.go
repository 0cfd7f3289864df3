package ui

import "testing"

func TestMenuPanelSkipsInertItems(t *testing.T) {
	var mp MenuPanel
	mp.SetSize(40, 10)
	mp.Show("Recent", []MenuItem{
		{Label: "a.go", Checked: true},
		{Label: "b.go", AccessKey: "2"},
		{Label: "c.go", Disabled: true},
	})
	if got := mp.Selected(); got != 1 {
		t.Fatalf("Selected = %d, want 1", got)
	}
	mp.CursorUp()
	if got := mp.Selected(); got != -1 {
		t.Errorf("checked item selectable: %d", got)
	}
	if got := mp.ByAccessKey("2"); got != 1 {
		t.Errorf("ByAccessKey(2) = %d", got)
	}
	mp.GotoBottom()
	if mp.Selected() != -1 {
		t.Error("disabled item selectable")
	}
	mp.HandleGKey()
	mp.HandleGKey()
	if mp.cursor != 0 {
		t.Errorf("gg left cursor at %d", mp.cursor)
	}
	if mp.View() == "" {
		t.Error("visible panel rendered nothing")
	}
}

func TestSplitPaneSizes(t *testing.T) {
	sp := NewSplitPane()
	sp.SetSize(81, 20)
	sizes := sp.PaneSizes(2)
	if sizes[0][0]+sizes[1][0]+1 != 81 {
		t.Errorf("vertical widths %v do not fill 81", sizes)
	}
	sp.Toggle()
	sizes = sp.PaneSizes(2)
	if sizes[0][1]+sizes[1][1]+1 != 20 || sizes[0][0] != 81 {
		t.Errorf("horizontal sizes %v", sizes)
	}
	if len(sp.PaneSizes(1)) != 1 {
		t.Error("single pane should have one size")
	}
}
