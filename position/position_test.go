package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Pos(0x34),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(0x77),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(0x00),
			wantErr:  nil,
		},
		{
			name:     "ok 4",
			notation: "c6",
			want:     C6,
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 7",
			notation: "E4",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestPosGeometry(t *testing.T) {
	t.Parallel()
	valid := 0
	for p := 0; p < 128; p++ {
		pos := Pos(p)
		if !pos.IsValid() {
			if pos.Notation() != "" {
				t.Errorf("unexpected notation for off-board square %#x: got=%s", p, pos.Notation())
			}
			continue
		}
		valid++
		back, err := NewPosFromNotation(pos.Notation())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != pos {
			t.Errorf("unexpected round trip: got=%v want=%v", back, pos)
		}
		if got, want := pos.Index64(), int(pos.Y())*8+int(pos.X()); got != want {
			t.Errorf("unexpected index: got=%d want=%d", got, want)
		}
	}
	if valid != 64 {
		t.Errorf("unexpected valid square count: got=%d want=64", valid)
	}
	if None.IsValid() {
		t.Error("None must be off the board")
	}
	if got := E2.Offset(16); got != E3 {
		t.Errorf("unexpected offset: got=%v want=%v", got, E3)
	}
	if H4.Offset(1).IsValid() {
		t.Error("h4 + 1 must leave the board")
	}
}
