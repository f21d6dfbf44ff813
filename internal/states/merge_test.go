package states

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hyperengineering/statefacts/internal/types"
)

func TestParseContiguity(t *testing.T) {
	tests := []struct {
		in   string
		want Contiguity
	}{
		{"true", ContiguousOnly},
		{"false", NonContiguousOnly},
		{"", AllStates},
		{"TRUE", AllStates},
		{"yes", AllStates},
	}
	for _, tt := range tests {
		if got := ParseContiguity(tt.in); got != tt.want {
			t.Errorf("ParseContiguity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMerge_FilterBeforeOverlay(t *testing.T) {
	refs := []types.StateReference{
		{Code: "AK", Name: "Alaska"},
		{Code: "GA", Name: "Georgia"},
		{Code: "HI", Name: "Hawaii"},
	}
	overlays := []types.FactOverlay{
		{StateCode: "AK", FunFacts: []string{"cold"}},
		{StateCode: "GA", FunFacts: []string{"peaches"}},
	}

	got := Merge(refs, overlays, ContiguousOnly)
	if len(got) != 1 || got[0].Code != "GA" {
		t.Fatalf("Merge(ContiguousOnly) = %+v, want only GA", got)
	}
	if !reflect.DeepEqual(got[0].FunFacts, []string{"peaches"}) {
		t.Errorf("GA FunFacts = %v", got[0].FunFacts)
	}

	got = Merge(refs, overlays, NonContiguousOnly)
	if len(got) != 2 || got[0].Code != "AK" || got[1].Code != "HI" {
		t.Fatalf("Merge(NonContiguousOnly) = %+v, want AK, HI", got)
	}
	if !reflect.DeepEqual(got[0].FunFacts, []string{"cold"}) {
		t.Errorf("AK FunFacts = %v", got[0].FunFacts)
	}
	if got[1].FunFacts != nil {
		t.Errorf("HI FunFacts = %v, want nil", got[1].FunFacts)
	}
}

func TestMerge_EmptyOverlayDoesNotOverwrite(t *testing.T) {
	refs := []types.StateReference{{Code: "GA"}}
	overlays := []types.FactOverlay{
		{StateCode: "GA", FunFacts: []string{"first"}},
		{StateCode: "GA", FunFacts: []string{}},
	}

	got := Merge(refs, overlays, AllStates)
	if !reflect.DeepEqual(got[0].FunFacts, []string{"first"}) {
		t.Errorf("FunFacts = %v, want [first]", got[0].FunFacts)
	}
}

func TestMerge_DuplicateOverlaysLastWins(t *testing.T) {
	refs := []types.StateReference{{Code: "GA"}}
	overlays := []types.FactOverlay{
		{StateCode: "GA", FunFacts: []string{"first"}},
		{StateCode: "GA", FunFacts: []string{"second"}},
	}

	got := Merge(refs, overlays, AllStates)
	if !reflect.DeepEqual(got[0].FunFacts, []string{"second"}) {
		t.Errorf("FunFacts = %v, want [second]", got[0].FunFacts)
	}
}

func TestMerge_UnknownOverlayIgnored(t *testing.T) {
	refs := []types.StateReference{{Code: "GA"}}
	overlays := []types.FactOverlay{{StateCode: "ZZ", FunFacts: []string{"x"}}}

	got := Merge(refs, overlays, AllStates)
	if len(got) != 1 || got[0].FunFacts != nil {
		t.Errorf("Merge() = %+v", got)
	}
}

func TestMerge_DoesNotAliasOverlayFacts(t *testing.T) {
	refs := []types.StateReference{{Code: "GA"}}
	facts := []string{"a"}
	got := Merge(refs, []types.FactOverlay{{StateCode: "GA", FunFacts: facts}}, AllStates)

	got[0].FunFacts[0] = "mutated"
	if facts[0] != "a" {
		t.Error("merged state shares backing array with overlay")
	}
}

func TestMergedList_Lengths(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	all, err := svc.MergedList(ctx, AllStates)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != svc.References().Len() {
		t.Errorf("len(all) = %d, want %d", len(all), svc.References().Len())
	}

	contig, err := svc.MergedList(ctx, ContiguousOnly)
	if err != nil {
		t.Fatal(err)
	}
	for _, st := range contig {
		if st.Code == "AK" || st.Code == "HI" {
			t.Errorf("contiguous list contains %s", st.Code)
		}
	}
	if len(contig) != 48 {
		t.Errorf("len(contig) = %d, want 48", len(contig))
	}

	non, err := svc.MergedList(ctx, NonContiguousOnly)
	if err != nil {
		t.Fatal(err)
	}
	if len(non) != 2 || non[0].Code != "AK" || non[1].Code != "HI" {
		t.Errorf("non-contiguous list = %v", non)
	}
}

func TestMergedList_AttachesFacts(t *testing.T) {
	ctx := context.Background()
	svc, overlays := newTestService(t, nil)

	if _, err := overlays.UpsertAppend(ctx, "TX", []string{"big"}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.MergedList(ctx, AllStates)
	if err != nil {
		t.Fatal(err)
	}
	for _, st := range list {
		if st.Code == "TX" {
			if !reflect.DeepEqual(st.FunFacts, []string{"big"}) {
				t.Errorf("TX FunFacts = %v", st.FunFacts)
			}
		} else if st.FunFacts != nil {
			t.Errorf("%s FunFacts = %v, want nil", st.Code, st.FunFacts)
		}
	}
}

func TestMergedOne_NoOverlayEqualsReference(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	for _, code := range svc.References().Codes() {
		got, err := svc.MergedOne(ctx, code)
		if err != nil {
			t.Fatalf("MergedOne(%s) error = %v", code, err)
		}
		ref, _ := svc.References().Lookup(code)
		if got.StateReference != ref {
			t.Errorf("MergedOne(%s) reference = %+v, want %+v", code, got.StateReference, ref)
		}
		if got.FunFacts != nil {
			t.Errorf("MergedOne(%s) FunFacts = %v, want nil", code, got.FunFacts)
		}
	}
}

func TestMergedOne_Unknown(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.MergedOne(context.Background(), "ZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("MergedOne(ZZ) error = %v, want ErrNotFound", err)
	}
}

func TestMergedOne_AfterAppend(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	if _, err := svc.AppendFacts(ctx, "GA", []byte(`["Peach State fact"]`)); err != nil {
		t.Fatal(err)
	}

	got, err := svc.MergedOne(ctx, "GA")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.FunFacts, []string{"Peach State fact"}) {
		t.Errorf("FunFacts = %v, want [Peach State fact]", got.FunFacts)
	}
}

func TestMergedList_StorageError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newBrokenService(t, boom)

	_, err := svc.MergedList(context.Background(), AllStates)
	if !errors.Is(err, ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want cause preserved", err)
	}
	if msg := Message(err, ""); msg != "Internal Server Error" {
		t.Errorf("Message() = %q, want generic message", msg)
	}
}
