package broadcast

import "testing"

func TestSubscribeGetsLatest(t *testing.T) {
	h := New(1, nil)
	h.Publish(2)
	ch, cancel := h.Subscribe()
	defer cancel()
	if v := <-ch; v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestPublishReplacesUnread(t *testing.T) {
	h := New(0, nil)
	ch, cancel := h.Subscribe()
	defer cancel()
	for i := 1; i <= 10; i++ {
		h.Publish(i)
	}
	if v := <-ch; v != 10 {
		t.Fatalf("expected latest value 10, got %d", v)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestCancelAndClose(t *testing.T) {
	h := New("a", nil)
	ch, cancel := h.Subscribe()
	<-ch
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}

	ch2, cancel2 := h.Subscribe()
	defer cancel2()
	<-ch2
	h.Close()
	if _, ok := <-ch2; ok {
		t.Fatalf("expected closed channel after Close")
	}
	h.Publish("ignored")
	if h.Latest() != "a" {
		t.Fatalf("publish after close must be ignored")
	}
}

func TestCloneIsolation(t *testing.T) {
	clone := func(v []int) []int { return append([]int(nil), v...) }
	src := []int{1, 2}
	h := New(src, clone)
	got := h.Latest()
	got[0] = 99
	if h.Latest()[0] != 1 {
		t.Fatalf("Latest must return a copy")
	}
}
