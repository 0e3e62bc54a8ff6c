package storage

import "testing"

func TestMemoryKV(t *testing.T) {
	var m Memory // zero value usable

	if _, ok, _ := m.Get("k"); ok {
		t.Fatal("empty Memory reported a value")
	}
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if err := m.Remove("k"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok, _ := m.Get("k"); ok {
		t.Error("value survived Remove()")
	}
}

func TestNopKV(t *testing.T) {
	var n Nop
	if err := n.Set("k", "v"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, err := n.Get("k"); ok || err != nil {
		t.Errorf("Nop.Get() = %v, %v; want absent, nil", ok, err)
	}
}

func TestNamespaceIsolatesUsers(t *testing.T) {
	base := NewMemory()
	alice := Namespace(base, UserPrefix("alice"))
	bob := Namespace(base, UserPrefix("bob"))

	if err := alice.Set("sweetcatch:userName", "Alice"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if _, ok, _ := bob.Get("sweetcatch:userName"); ok {
		t.Error("bob can see alice's data")
	}
	if v, ok, _ := base.Get("user:alice/sweetcatch:userName"); !ok || v != "Alice" {
		t.Errorf("underlying key = %q, %v", v, ok)
	}

	if err := alice.Remove("sweetcatch:userName"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if base.Len() != 0 {
		t.Errorf("underlying store has %d keys after Remove()", base.Len())
	}
}

func TestUserPrefix(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "user:alice/"},
		{"", "user:anonymous/"},
	}
	for _, tt := range tests {
		if got := UserPrefix(tt.user); got != tt.want {
			t.Errorf("UserPrefix(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
