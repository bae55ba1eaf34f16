package directory

import "testing"

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		total    int
		wantList int
		wantForm int
	}{
		{100, 60, 40},
		{150, 90, 60},
		{70, 40, MinFormWidth}, // form floor wins over list floor
		{0, 0, 0},
		{-5, 0, 0},
	}
	for _, tt := range tests {
		list, form := PaneWidths(tt.total)
		if list != tt.wantList || form != tt.wantForm {
			t.Errorf("PaneWidths(%d) = (%d, %d), want (%d, %d)", tt.total, list, form, tt.wantList, tt.wantForm)
		}
	}
}

func TestPaneWidths_SumsToTotal(t *testing.T) {
	for _, total := range []int{74, 80, 100, 133, 200} {
		list, form := PaneWidths(total)
		if list+form != total {
			t.Errorf("PaneWidths(%d) = (%d, %d), sum %d", total, list, form, list+form)
		}
	}
}

func TestColumnsFor(t *testing.T) {
	cols := columnsFor(58)
	if len(cols) != 3 {
		t.Fatalf("columns = %d, want 3", len(cols))
	}
	if cols[0].Width != 20 || cols[1].Width != 20 {
		t.Errorf("name widths = %d, %d, want 20", cols[0].Width, cols[1].Width)
	}
	if cols[2].Width != phoneColumnWidth {
		t.Errorf("phone width = %d, want %d", cols[2].Width, phoneColumnWidth)
	}
}

func TestColumnsFor_Floor(t *testing.T) {
	for _, c := range columnsFor(0)[:2] {
		if c.Width != 8 {
			t.Errorf("%s width = %d, want floor 8", c.Title, c.Width)
		}
	}
}

func TestBorders_Render(t *testing.T) {
	if FocusedBorder().Render("x") == "" || UnfocusedBorder().Render("x") == "" {
		t.Error("border styles should render content")
	}
}
