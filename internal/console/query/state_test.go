package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultLimit, s.Limit)
	assert.Empty(t, s.Sort)
}

func TestToggleSort_Cycle(t *testing.T) {
	s := New()

	s = s.ToggleSort("lead_Title")
	assert.Equal(t, []SortField{{Field: "lead_Title", Order: Asc}}, s.Sort)

	s = s.ToggleSort("lead_Title")
	assert.Equal(t, []SortField{{Field: "lead_Title", Order: Desc}}, s.Sort)

	s = s.ToggleSort("lead_Title")
	assert.Empty(t, s.Sort)
}

func TestToggleSort_AnotherFieldReplaces(t *testing.T) {
	s := New().ToggleSort("lead_Title").ToggleSort("lead_Title")
	s = s.ToggleSort("created_at")

	assert.Equal(t, []SortField{{Field: "created_at", Order: Asc}}, s.Sort)
	assert.Equal(t, Asc, s.SortFor("created_at"))
	assert.Equal(t, Direction(""), s.SortFor("lead_Title"))
}

func TestNonPageMutationsResetPage(t *testing.T) {
	base := New().SetPage(4)
	mutations := map[string]func(State) State{
		"search":      func(s State) State { return s.SetSearch("acme") },
		"status":      func(s State) State { return s.SetStatusFilter("Pending") },
		"filter":      func(s State) State { return s.SetFilter("lead_Assigned_To", 3) },
		"sort":        func(s State) State { return s.ToggleSort("lead_Title") },
		"limit":       func(s State) State { return s.SetLimit(50) },
		"clear":       func(s State) State { return s.Clear() },
		"clearFilter": func(s State) State { return s.SetFilter("lead_Assigned_To", "") },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1, mutate(base).Page)
		})
	}
}

func TestSetPage_ChangesOnlyPage(t *testing.T) {
	s := New().SetSearch("acme").SetStatusFilter("Working").ToggleSort("lead_Title").SetLimit(20)
	next := s.SetPage(3)

	want := s.Clone()
	want.Page = 3
	if diff := cmp.Diff(want, next); diff != "" {
		t.Errorf("SetPage изменил не только страницу (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, s.SetPage(0).Page)
	assert.Equal(t, 1, s.SetPage(-5).Page)
}

func TestSetLimit_RejectsUnknownSize(t *testing.T) {
	assert.Equal(t, 50, New().SetLimit(50).Limit)
	assert.Equal(t, DefaultLimit, New().SetLimit(7).Limit)
}

func TestClear_KeepsLimit(t *testing.T) {
	s := New().SetLimit(20).SetSearch("x").SetStatusFilter("Pending").ToggleSort("a").SetFilter("k", 1).SetPage(9)
	c := s.Clear()

	assert.Equal(t, State{Page: 1, Limit: 20}, c)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	s := New().SetFilter("lead_Created_By", 5).ToggleSort("lead_Title")
	before := s.Clone()

	_ = s.SetFilter("lead_Created_By", 9)
	_ = s.ToggleSort("lead_Title")

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("исходное состояние изменилось (-before +after):\n%s", diff)
	}
}
