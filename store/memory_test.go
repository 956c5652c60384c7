package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/glowkit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want store not found", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get() = %q, %v, want v", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after delete error = %v, want store not found", err)
	}
}

func TestMemoryStore_BatchGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := s.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	want := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BatchGet() = %v, want %v", got, want)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// 评分榜单：分数降序、同分按成员升序
	ratings := map[string]float64{"p1": 4.5, "p2": 4.9, "p3": 4.5}
	for member, score := range ratings {
		if err := s.ZAdd(ctx, "hot:rating", score, member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	got, err := s.ZRange(ctx, "hot:rating", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if want := []string{"p2", "p1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ZRange() = %v, want %v", got, want)
	}

	score, err := s.ZScore(ctx, "hot:rating", "p2")
	if err != nil || score != 4.9 {
		t.Errorf("ZScore() = %v, %v, want 4.9", score, err)
	}
	if _, err := s.ZScore(ctx, "hot:rating", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(missing) error = %v, want store not found", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.HSet(ctx, "features:product:p1", "rating", []byte("4.7")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := s.HGet(ctx, "features:product:p1", "rating")
	if err != nil || string(got) != "4.7" {
		t.Errorf("HGet() = %q, %v, want 4.7", got, err)
	}

	all, err := s.HGetAll(ctx, "features:product:p1")
	if err != nil || len(all) != 1 {
		t.Errorf("HGetAll() = %v, %v, want 1 field", all, err)
	}
}
