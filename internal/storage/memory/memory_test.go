package memory

import (
	"context"
	"testing"

	"gastos/internal/storage"
	"gastos/internal/storage/storagetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storagetest.Run(t, New())
}

func TestNewWithPreloadsRecords(t *testing.T) {
	s := NewWith(map[string]string{storage.KeyIncome: "300"})
	v, ok, err := s.Load(context.Background(), storage.KeyIncome)
	if err != nil || !ok || v != "300" {
		t.Fatalf("unexpected load: v=%q ok=%v err=%v", v, ok, err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", s.Len())
	}
}
