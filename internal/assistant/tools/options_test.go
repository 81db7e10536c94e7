package tools

import "testing"

func TestParseStrReplaceOptions(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]interface{}
		wantErr bool
		want    StrReplaceOptions
	}{
		{
			name:  "valid",
			input: map[string]interface{}{"old_str": "a", "new_str": "b"},
			want:  StrReplaceOptions{OldStr: "a", NewStr: "b"},
		},
		{
			name:  "empty new_str is a deletion",
			input: map[string]interface{}{"old_str": "a", "new_str": ""},
			want:  StrReplaceOptions{OldStr: "a", NewStr: ""},
		},
		{
			name:    "missing new_str",
			input:   map[string]interface{}{"old_str": "a"},
			wantErr: true,
		},
		{
			name:    "empty old_str",
			input:   map[string]interface{}{"old_str": "", "new_str": "b"},
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   map[string]interface{}{"old_str": "a", "new_str": 3.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrReplaceOptions(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseInsertOptions(t *testing.T) {
	t.Run("json numbers arrive as float64", func(t *testing.T) {
		got, err := ParseInsertOptions(map[string]interface{}{
			"insert_line": float64(7),
			"new_str":     "x",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.InsertLine != 7 || got.NewStr != "x" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("missing insert_line", func(t *testing.T) {
		if _, err := ParseInsertOptions(map[string]interface{}{"new_str": "x"}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("string insert_line rejected", func(t *testing.T) {
		if _, err := ParseInsertOptions(map[string]interface{}{"insert_line": "3", "new_str": "x"}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestParseCreateOptions(t *testing.T) {
	t.Run("empty file_text is a valid empty note", func(t *testing.T) {
		got, err := ParseCreateOptions(map[string]interface{}{"file_text": ""})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.FileText != "" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("missing file_text", func(t *testing.T) {
		if _, err := ParseCreateOptions(map[string]interface{}{}); err == nil {
			t.Fatal("expected error")
		}
	})
}
