package diag

import "testing"

func TestBagAccumulatesWithoutPanicking(t *testing.T) {
	var bag Bag
	bag.Errorf([]Label{PrimaryLabel(Span{Start: 0, End: 3}, "bad token")}, "unexpected token %q", "foo")
	bag.Warnf([]Label{PrimaryLabel(Span{Start: 4, End: 5}, "")}, "control reaches end of function")

	if !bag.HasErrors() {
		t.Fatalf("HasErrors() = false, want true")
	}
	if got := bag.CountErrors(); got != 1 {
		t.Errorf("CountErrors() = %d, want 1", got)
	}
	if got := bag.CountWarnings(); got != 1 {
		t.Errorf("CountWarnings() = %d, want 1", got)
	}
	if got := len(bag.Items()); got != 2 {
		t.Errorf("len(Items()) = %d, want 2", got)
	}
}

func TestBagRenderSummaryLine(t *testing.T) {
	var bag Bag
	bag.Errorf(nil, "first error")
	bag.Errorf(nil, "second error")

	out := bag.Render("source text")
	want := "2 error(s) generated.\n"
	if len(out) < len(want) || out[len(out)-len(want):] != want {
		t.Errorf("Render summary = %q, want suffix %q", out, want)
	}
}

func TestBagRenderNoDiagnostics(t *testing.T) {
	var bag Bag
	out := bag.Render("source text")
	if out != "" {
		t.Errorf("Render() with no diagnostics = %q, want empty string", out)
	}
}
