package taxonomy

import "testing"

func TestDefaultLookups(t *testing.T) {
	tables := Default()

	tests := []struct {
		name  string
		check func() bool
		want  bool
	}{
		{"stop word present", func() bool { return tables.IsStopWord("the") }, true},
		{"stop word absent", func() bool { return tables.IsStopWord("kubernetes") }, false},
		{"action verb case insensitive", func() bool { return tables.IsActionVerb("led") }, true},
		{"action verb capitalized", func() bool { return tables.IsActionVerb("Delivered") }, true},
		{"not an action verb", func() bool { return tables.IsActionVerb("helped") }, false},
		{"passive auxiliary", func() bool { return tables.IsPassiveAux("Been") }, true},
		{"hard skill", func() bool { return tables.IsHardSkill("golang") }, true},
		{"soft skill", func() bool { return tables.IsSoftSkill("leadership") }, true},
		{"job title", func() bool { return tables.IsJobTitle("engineer") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultVerbOrder(t *testing.T) {
	tables := Default()
	verbs := tables.ActionVerbs()
	if len(verbs) == 0 {
		t.Fatal("expected non-empty action verb table")
	}
	if verbs[0] != "Led" {
		t.Errorf("expected default verb 'Led' first, got %q", verbs[0])
	}
}

func TestOverrides(t *testing.T) {
	tables := New(Overrides{
		ActionVerbs: []string{"Shipped", "Scaled"},
		HardSkills:  []string{"erlang"},
	})

	if !tables.IsActionVerb("shipped") {
		t.Error("override verb not recognized")
	}
	if tables.IsActionVerb("led") {
		t.Error("default verb should be replaced by override")
	}
	if !tables.IsHardSkill("erlang") {
		t.Error("override hard skill not recognized")
	}
	// untouched tables keep defaults
	if !tables.IsStopWord("and") {
		t.Error("stop words should fall back to defaults")
	}
}

func TestOverridesDoNotAliasInput(t *testing.T) {
	verbs := []string{"Shipped"}
	tables := New(Overrides{ActionVerbs: verbs})
	verbs[0] = "Mutated"
	if got := tables.ActionVerbs()[0]; got != "Shipped" {
		t.Errorf("tables aliased caller slice, got %q", got)
	}
}
