package formula

import (
	"testing"

	"agrocalc-be/internal/pkg/apperr"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		volume  float64
		want    float64
		wantErr bool
	}{
		{
			name:   "catalog reference formula",
			expr:   "(v/2)*5",
			volume: 10,
			want:   25,
		},
		{
			name:   "plain variable",
			expr:   "v",
			volume: 20,
			want:   20,
		},
		{
			name:   "spaces and floats",
			expr:   " v * 1.5 + 2 ",
			volume: 10,
			want:   17,
		},
		{
			name:   "unary minus",
			expr:   "-v + 30",
			volume: 10,
			want:   20,
		},
		{
			name:    "dangling operator",
			expr:    "v+",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "empty formula",
			expr:    "",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "only whitespace",
			expr:    "   ",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "unknown name",
			expr:    "r * 2",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "division by zero",
			expr:    "v / 0",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "division by zero expression",
			expr:    "v / (v - 10)",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "function call rejected",
			expr:    "len(v)",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "selector rejected",
			expr:    "os.Exit",
			volume:  10,
			wantErr: true,
		},
		{
			name:    "string literal rejected",
			expr:    `"boom"`,
			volume:  10,
			wantErr: true,
		},
		{
			name:    "modulo not in grammar",
			expr:    "v % 3",
			volume:  10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, tt.volume)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Evaluate(%q) = %v, want error", tt.expr, got)
				}
				if !apperr.Is(err, apperr.KindEvaluation) {
					t.Fatalf("Evaluate(%q) error kind = %v, want evaluation", tt.expr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) unexpected error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}
