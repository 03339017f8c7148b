package session

import "testing"

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	if got := s.Token(); got != "" {
		t.Errorf("fresh store token = %q", got)
	}

	s.Set("abc123")
	if got := s.Token(); got != "abc123" {
		t.Errorf("token = %q, want abc123", got)
	}

	s.Clear()
	if got := s.Token(); got != "" {
		t.Errorf("cleared token = %q", got)
	}
}

func TestMemoryStoreStripsBearerPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain token", in: "tok-1", want: "tok-1"},
		{name: "bearer prefix", in: "Bearer tok-2", want: "tok-2"},
		{name: "lower-case prefix", in: "bearer tok-3", want: "tok-3"},
		{name: "surrounding whitespace", in: "  Bearer tok-4 ", want: "tok-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore("")
			s.Set(tt.in)
			if got := s.Token(); got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemoryStoreSeededWithStaticToken(t *testing.T) {
	s := NewMemoryStore("Bearer static-tok")
	if got := s.Token(); got != "static-tok" {
		t.Errorf("seeded token = %q, want static-tok", got)
	}
}
