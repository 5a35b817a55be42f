package store

import (
	"sync"
	"testing"
)

func TestStore_SubscribeCallsImmediately(t *testing.T) {
	s := New(1)
	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })
	defer unsubscribe()

	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected immediate call with 1, got %v", got)
	}
	s.Set(2)
	s.Update(func(v int) int { return v * 10 })
	if len(got) != 3 || got[2] != 20 {
		t.Errorf("expected [1 2 20], got %v", got)
	}
}

func TestStore_RegistrationOrder(t *testing.T) {
	s := New("")
	var order []string
	s.Subscribe(func(string) { order = append(order, "a") })
	s.Subscribe(func(string) { order = append(order, "b") })
	order = nil

	s.Set("x")
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("expected [a b], got %v", order)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := New(0)
	calls := 0
	unsubscribe := s.Subscribe(func(int) { calls++ })
	unsubscribe()
	unsubscribe()
	s.Set(5)
	if calls != 1 {
		t.Errorf("expected only the initial call, got %d", calls)
	}
	if s.Get() != 5 {
		t.Errorf("expected 5, got %d", s.Get())
	}
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := New(0)
	var seen int
	s.Subscribe(func(int) { seen = s.Get() })
	s.Set(7)
	if seen != 7 {
		t.Errorf("expected listener to read 7, got %d", seen)
	}
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v int) int { return v + 1 })
		}()
	}
	wg.Wait()
	if s.Get() != 50 {
		t.Errorf("expected 50, got %d", s.Get())
	}
}
