package keylock

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("emp-1:2024-03-15")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := New()

	unlockA := km.Lock("emp-1:2024-03-14")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("emp-1:2024-03-15")
		unlockB()
		close(done)
	}()
	<-done // other key must not block
	unlockA()
}

func TestKeyedMutexCleansUp(t *testing.T) {
	km := New()
	unlock := km.Lock("k")
	unlock()
	if len(km.locks) != 0 {
		t.Errorf("expected lock table to be empty, got %d entries", len(km.locks))
	}
}
