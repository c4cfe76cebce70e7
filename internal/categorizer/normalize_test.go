// internal/categorizer/normalize_test.go
package categorizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "PADARIA", "padaria"},
		{"strips acute", "Combustível", "combustivel"},
		{"strips tilde", "Cartão", "cartao"},
		{"strips cedilla accent only", "Alimentação", "alimentacao"},
		{"mixed", "Pão de Açúcar", "pao de acucar"},
		{"ascii untouched", "uber trip 99", "uber trip 99"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Transferência", "Água", "ÔNIBUS", "já normalizado"}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
