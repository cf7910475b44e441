package lookup

import (
	"fmt"
	"testing"

	"stockroom/inventory"
)

func entryNames(entries []inventory.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestMatchTokens(t *testing.T) {
	cases := []struct {
		query string
		name  string
		want  bool
	}{
		{"", "Cement 42.5 (bag)", true},
		{"   ", "Cement 42.5 (bag)", true},
		{"cem", "Cement 42.5 (bag)", true},
		{"CEM BAG", "Cement 42.5 (bag)", true},
		{"bag cem", "Cement 42.5 (bag)", true},
		{"cem sand", "Cement 42.5 (bag)", false},
		{"sand", "Sand (m3)", true},
		{"42.5", "Cement 42.5 (bag)", true},
		{"cement  bags", "Cement 42.5 (bag)", false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q_%q", tc.query, tc.name), func(t *testing.T) {
			if got := MatchTokens(tc.query, tc.name); got != tc.want {
				t.Fatalf("MatchTokens(%q, %q) = %v, want %v", tc.query, tc.name, got, tc.want)
			}
		})
	}
}

func TestFilter_OrderAndEmptyQuery(t *testing.T) {
	entries := []inventory.Entry{
		{Name: "Sand (m3)"},
		{Name: "Cement 42.5 (bag)"},
		{Name: "Gravel 20mm (m3)"},
	}

	got := Filter(entries, "")
	if len(got) != len(entries) {
		t.Fatalf("empty query must match all, got %d of %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i].Name != entries[i].Name {
			t.Fatalf("input order not preserved at %d: got %q want %q", i, got[i].Name, entries[i].Name)
		}
	}

	got = Filter(entries, "m3")
	want := []string{"Sand (m3)", "Gravel 20mm (m3)"}
	if fmt.Sprint(entryNames(got)) != fmt.Sprint(want) {
		t.Fatalf("Filter m3 = %v, want %v", entryNames(got), want)
	}
}

func TestFilter_CapsResults(t *testing.T) {
	entries := make([]inventory.Entry, 0, MaxResults+20)
	for i := 0; i < MaxResults+20; i++ {
		entries = append(entries, inventory.Entry{Name: fmt.Sprintf("Item %03d", i)})
	}

	got := Filter(entries, "item")
	if len(got) != MaxResults {
		t.Fatalf("expected cap of %d results, got %d", MaxResults, len(got))
	}
	if got[0].Name != "Item 000" || got[MaxResults-1].Name != fmt.Sprintf("Item %03d", MaxResults-1) {
		t.Fatalf("cap must keep the first matches, got %q..%q", got[0].Name, got[MaxResults-1].Name)
	}
}
