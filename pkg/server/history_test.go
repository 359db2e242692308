package server

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func frames(s ...string) [][]byte {
	out := make([][]byte, len(s))
	for i, v := range s {
		out[i] = []byte(v)
	}
	return out
}

func TestHistorySince(t *testing.T) {
	h := NewHistory(4)
	h.Add(1, frames("a"))
	h.Add(2, frames("b1", "b2"))
	h.Add(3, frames("c"))

	tests := []struct {
		seq    uint64
		want   [][]byte
		wantOK bool
	}{
		{seq: 0, want: frames("a", "b1", "b2", "c"), wantOK: true},
		{seq: 1, want: frames("b1", "b2", "c"), wantOK: true},
		{seq: 2, want: frames("c"), wantOK: true},
		{seq: 3, want: nil, wantOK: true},
		{seq: 9, want: nil, wantOK: true},
	}
	for _, tt := range tests {
		got, ok := h.Since(tt.seq)
		if ok != tt.wantOK {
			t.Errorf("Since(%d) ok = %v, want %v", tt.seq, ok, tt.wantOK)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Since(%d) mismatch (-want +got):\n%s", tt.seq, diff)
		}
	}
}

func TestHistoryOverwrite(t *testing.T) {
	h := NewHistory(2)
	for seq := uint64(1); seq <= 5; seq++ {
		h.Add(seq, frames(string(rune('a'+seq-1))))
	}
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	if _, ok := h.Since(2); ok {
		t.Error("Since(2) ok after pass 3 was overwritten")
	}
	got, ok := h.Since(3)
	if !ok {
		t.Fatal("Since(3) not ok")
	}
	if diff := cmp.Diff(frames("d", "e"), got); diff != "" {
		t.Errorf("Since(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	if got, ok := h.Since(0); !ok || got != nil {
		t.Errorf("Since(0) = %v, %v on empty history", got, ok)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(4)
	h.Add(1, frames("a"))
	h.Add(2, frames("b"))
	h.Clear(3)

	if h.Len() != 0 {
		t.Errorf("Len() = %d after Clear", h.Len())
	}
	if _, ok := h.Since(1); ok {
		t.Error("Since(1) ok after Clear(3)")
	}
	if _, ok := h.Since(3); !ok {
		t.Error("Since(3) not ok after Clear(3)")
	}

	h.Add(4, frames("d"))
	got, ok := h.Since(3)
	if !ok {
		t.Fatal("Since(3) not ok")
	}
	if diff := cmp.Diff(frames("d"), got); diff != "" {
		t.Errorf("Since(3) mismatch (-want +got):\n%s", diff)
	}
}
