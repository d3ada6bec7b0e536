package drawing

import (
	"errors"
	"math"
	"sync"
	"testing"
)

const eps = 1e-9

// scale of 1 keeps test coordinates in inches; pixel conversion is covered
// in the geometry tests.
func place(st *State, x, y float64) {
	st.PlacePoint(x, y, 1)
}

func TestFirstClickOnlySetsPending(t *testing.T) {
	st := NewState()
	if seg := st.PlacePoint(0, 0, 1); seg != nil {
		t.Fatalf("first click created segment %+v", seg)
	}
	if len(st.Segments()) != 0 {
		t.Fatal("segment list not empty after first click")
	}
	if _, ok := st.Pending(); !ok {
		t.Fatal("pending point not set")
	}
}

func TestPlacementChains(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	seg := st.PlacePoint(10, 0, 1)
	if seg == nil {
		t.Fatal("second click created no segment")
	}
	if seg.Label != "A" {
		t.Errorf("first segment label = %q, want A", seg.Label)
	}
	if math.Abs(seg.Length()-10) > eps {
		t.Errorf("segment A length = %v, want 10", seg.Length())
	}
	if math.Abs(st.TotalLength()-10) > eps || st.BendCount() != 0 {
		t.Errorf("totals = (%v, %d), want (10, 0)", st.TotalLength(), st.BendCount())
	}

	// Next click continues from (10,0), not from scratch.
	seg = st.PlacePoint(10, 5, 1)
	if seg.Label != "B" {
		t.Errorf("second segment label = %q, want B", seg.Label)
	}
	if seg.Start.X != 10 || seg.Start.Y != 0 {
		t.Errorf("segment B starts at %+v, want (10, 0)", seg.Start)
	}
	if math.Abs(st.TotalLength()-15) > eps || st.BendCount() != 1 {
		t.Errorf("totals = (%v, %d), want (15, 1)", st.TotalLength(), st.BendCount())
	}
}

func TestPlacementSnapsInput(t *testing.T) {
	st := NewState()
	place(st, 0.04, 0.04) // snaps to origin
	seg := st.PlacePoint(10.1, 0.01, 1)
	if seg.End.X != 10.125 || seg.End.Y != 0 {
		t.Errorf("snapped end = %+v, want (10.125, 0)", seg.End)
	}
}

func TestSamePointClickIgnored(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	if seg := st.PlacePoint(0.01, 0.02, 1); seg != nil {
		t.Fatalf("zero-length click created %+v", seg)
	}
	if len(st.Segments()) != 0 {
		t.Fatal("zero-length segment reached the list")
	}
}

func TestPlacementClearsSelection(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	seg := st.PlacePoint(10, 0, 1)
	if err := st.Select(seg.ID); err != nil {
		t.Fatal(err)
	}
	place(st, 10, 5)
	if st.SelectedID() != 0 {
		t.Error("selection survived a placed point")
	}
}

func TestDeleteRequiresSelection(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	place(st, 10, 0)

	if err := st.DeleteSelected(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("delete without selection: %v, want ErrNoSelection", err)
	}
	if len(st.Segments()) != 1 {
		t.Fatal("failed delete mutated the list")
	}
}

func TestDeleteKeepsLabels(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	a := st.PlacePoint(10, 0, 1)
	st.PlacePoint(10, 5, 1)

	if err := st.Select(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.AddHem(false); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteSelected(); err != nil {
		t.Fatal(err)
	}

	segs := st.Segments()
	if len(segs) != 1 || segs[0].Label != "B" {
		t.Fatalf("after delete: %+v, want single segment labeled B", segs)
	}
	// Labels keep advancing; the next segment is C, not a reused A.
	next := st.PlacePoint(20, 5, 1)
	if next.Label != "C" {
		t.Errorf("next label = %q, want C", next.Label)
	}
}

func TestDeleteRecomputesTotals(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	a := st.PlacePoint(10, 0, 1)
	b := st.PlacePoint(10, 5, 1)

	st.Select(b.ID)
	st.AddHem(false)
	st.Select(a.ID)
	st.DeleteSelected()

	if got := st.TotalLength(); math.Abs(got-5.5) > eps {
		t.Errorf("total after delete = %v, want 5.5", got)
	}
}

func TestHemOperations(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	st.PlacePoint(10, 0, 1)
	b := st.PlacePoint(10, 5, 1)

	if err := st.AddHem(false); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("hem without selection: %v, want ErrNoSelection", err)
	}
	if err := st.RemoveHem(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("remove hem without selection: %v, want ErrNoSelection", err)
	}

	if err := st.Select(b.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveHem(); !errors.Is(err, ErrNoHem) {
		t.Fatalf("remove absent hem: %v, want ErrNoHem", err)
	}

	before := st.BendCount()
	if err := st.AddHem(false); err != nil {
		t.Fatal(err)
	}
	if math.Abs(st.TotalLength()-15.5) > eps {
		t.Errorf("total with hem = %v, want 15.5", st.TotalLength())
	}
	if st.BendCount() != before+1 {
		t.Errorf("hem added %d bends, want 1", st.BendCount()-before)
	}

	if err := st.RemoveHem(); err != nil {
		t.Fatal(err)
	}
	if st.BendCount() != before {
		t.Errorf("bend count after hem removal = %d, want %d", st.BendCount(), before)
	}
}

func TestSelectUnknown(t *testing.T) {
	st := NewState()
	if err := st.Select(42); !errors.Is(err, ErrUnknownSegment) {
		t.Errorf("select unknown: %v, want ErrUnknownSegment", err)
	}
}

func TestClearConfirmation(t *testing.T) {
	st := NewState()
	if err := st.Clear(false); err != nil {
		t.Fatalf("clearing an empty drawing should not need confirmation: %v", err)
	}

	place(st, 0, 0)
	st.PlacePoint(10, 0, 1)
	if err := st.Clear(false); !errors.Is(err, ErrNeedsConfirm) {
		t.Fatalf("unconfirmed clear: %v, want ErrNeedsConfirm", err)
	}
	if len(st.Segments()) != 1 {
		t.Fatal("unconfirmed clear mutated the drawing")
	}

	if err := st.Clear(true); err != nil {
		t.Fatal(err)
	}
	if len(st.Segments()) != 0 || st.SelectedID() != 0 {
		t.Fatal("confirmed clear left state behind")
	}
	if _, ok := st.Pending(); ok {
		t.Fatal("pending point survived clear")
	}
	// Label counter restarts.
	place(st, 0, 0)
	if seg := st.PlacePoint(5, 0, 1); seg.Label != "A" {
		t.Errorf("label after clear = %q, want A", seg.Label)
	}
}

func TestLabelsContinuePastZ(t *testing.T) {
	st := NewState()
	place(st, 0, 0)
	for i := 1; i <= 28; i++ {
		st.PlacePoint(float64(i), 0, 1)
	}

	segs := st.Segments()
	if len(segs) != 28 {
		t.Fatalf("placed 28 segments, got %d", len(segs))
	}
	if segs[0].Label != "A" || segs[25].Label != "Z" {
		t.Errorf("single-letter labels = %q..%q, want A..Z", segs[0].Label, segs[25].Label)
	}
	if segs[26].Label != "AA" || segs[27].Label != "AB" {
		t.Errorf("labels past Z = %q, %q, want AA, AB", segs[26].Label, segs[27].Label)
	}
}

// One account with the drawing open in two tabs mutates the same State from
// overlapping requests; placements must serialize and keep the chain and
// label sequence intact.
func TestConcurrentPlacement(t *testing.T) {
	st := NewState()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				// Every goroutine places distinct points, so each call past
				// the very first creates exactly one segment.
				st.PlacePoint(float64(g*50+i), float64(g+1), 1)
			}
		}(g)
	}
	wg.Wait()

	segs := st.Segments()
	if len(segs) != 399 {
		t.Fatalf("400 placements made %d segments, want 399", len(segs))
	}

	seen := make(map[string]bool)
	for i, s := range segs {
		if seen[s.Label] {
			t.Fatalf("label %q assigned twice", s.Label)
		}
		seen[s.Label] = true
		if i > 0 && s.Start != segs[i-1].End {
			t.Fatalf("segment %d does not chain from its predecessor", i)
		}
	}
	if st.BendCount() != len(segs)-1 {
		t.Errorf("bend count = %d, want %d", st.BendCount(), len(segs)-1)
	}
}

func TestStorePerSession(t *testing.T) {
	store := NewStore()
	a := store.Get("alice")
	b := store.Get("bob")
	if a == b {
		t.Fatal("sessions share a drawing")
	}
	place(a, 0, 0)
	a.PlacePoint(10, 0, 1)
	if len(store.Get("alice").Segments()) != 1 {
		t.Error("store did not keep alice's drawing")
	}
	if len(store.Get("bob").Segments()) != 0 {
		t.Error("bob sees alice's segments")
	}
	store.Drop("alice")
	if len(store.Get("alice").Segments()) != 0 {
		t.Error("Drop did not reset the drawing")
	}
}
