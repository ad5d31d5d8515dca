package keymap

import (
	"strings"
	"testing"

	"github.com/dshills/gridview/internal/input/key"
)

func TestNewKeymap(t *testing.T) {
	km := NewKeymap("test").WithSource("config").Add("j", ActionScrollDown)

	if km.Name != "test" {
		t.Errorf("expected name test, got %q", km.Name)
	}
	if km.Source != "config" {
		t.Errorf("expected source config, got %q", km.Source)
	}
	if len(km.Bindings) != 1 {
		t.Errorf("expected 1 binding, got %d", len(km.Bindings))
	}
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  *Keymap
		wantErr string
	}{
		{
			name:   "valid keymap",
			keymap: NewKeymap("ok").Add("j", ActionScrollDown).Add("Ctrl+c", ActionQuit),
		},
		{
			name:    "empty keys",
			keymap:  NewKeymap("bad").Add("", ActionQuit),
			wantErr: "empty keys",
		},
		{
			name:    "empty action",
			keymap:  NewKeymap("bad").Add("q", ""),
			wantErr: "empty action",
		},
		{
			name:    "unknown action",
			keymap:  NewKeymap("bad").Add("q", "editor.save"),
			wantErr: "unknown action",
		},
		{
			name:    "bad modifier",
			keymap:  NewKeymap("bad").Add("Hyper+q", ActionQuit),
			wantErr: "unknown modifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefault_Lookup(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		event  key.Event
		action string
	}{
		{key.NewRuneEvent('q', key.ModNone), ActionQuit},
		{key.NewRuneEvent('c', key.ModCtrl), ActionQuit},
		{key.NewRuneEvent('c', key.ModNone), ActionSelectionClear},
		{key.NewRuneEvent('/', key.ModNone), ActionSearchPrompt},
		{key.NewSpecialEvent(key.KeyEscape, key.ModNone), ActionSearchClear},
		{key.NewSpecialEvent(key.KeyPageDown, key.ModNone), ActionPageDown},
		{key.NewRuneEvent(' ', key.ModNone), ActionPageDown},
		{key.NewRuneEvent('G', key.ModShift), ActionScrollBottom},
		{key.NewRuneEvent('0', key.ModNone), ActionSortClear},
		{key.NewRuneEvent('7', key.ModNone), ActionSortColumn},
		{key.NewSpecialEvent(key.KeyLeft, key.ModNone), ActionPanLeft},
	}
	for _, tt := range tests {
		b, ok := parsed.Lookup(tt.event)
		if !ok {
			t.Errorf("%s: expected a binding", tt.event)
			continue
		}
		if b.Action != tt.action {
			t.Errorf("%s: expected %s, got %s", tt.event, tt.action, b.Action)
		}
	}

	if _, ok := parsed.Lookup(key.NewRuneEvent('z', key.ModNone)); ok {
		t.Error("expected no binding for z")
	}
	if _, ok := parsed.Lookup(key.NewSpecialEvent(key.KeyPageDown, key.ModCtrl)); ok {
		t.Error("expected no binding for Ctrl+PageDown")
	}
}

func TestDefault_SortColumnArgs(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, ok := parsed.Lookup(key.NewRuneEvent('3', key.ModNone))
	if !ok {
		t.Fatal("expected a binding for 3")
	}
	if got := b.IntArg("column", 0); got != 3 {
		t.Errorf("expected column 3, got %d", got)
	}
}

func TestMerge_LaterWins(t *testing.T) {
	user := NewKeymap("user").Add("q", ActionSearchPrompt)
	parsed, err := Default().Merge(user).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, _ := parsed.Lookup(key.NewRuneEvent('q', key.ModNone))
	if b.Action != ActionSearchPrompt {
		t.Errorf("expected override %s, got %s", ActionSearchPrompt, b.Action)
	}
}

func TestBinding_IntArg(t *testing.T) {
	tests := []struct {
		args map[string]any
		want int
	}{
		{map[string]any{"column": 2}, 2},
		{map[string]any{"column": int64(4)}, 4},
		{map[string]any{"column": 5.0}, 5},
		{map[string]any{"column": "x"}, -1},
		{nil, -1},
	}
	for _, tt := range tests {
		b := NewBinding("1", ActionSortColumn).WithArgs(tt.args)
		if got := b.IntArg("column", -1); got != tt.want {
			t.Errorf("IntArg(%v): expected %d, got %d", tt.args, tt.want, got)
		}
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("orig")
	km.AddBinding(NewBinding("1", ActionSortColumn).WithArgs(map[string]any{"column": 1}))

	clone := km.Clone()
	clone.Bindings[0].Args["column"] = 9
	clone.Add("q", ActionQuit)

	if km.Bindings[0].Args["column"] != 1 {
		t.Error("expected original args unchanged")
	}
	if len(km.Bindings) != 1 {
		t.Errorf("expected original to keep 1 binding, got %d", len(km.Bindings))
	}
}
