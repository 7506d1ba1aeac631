package rates

import "testing"

func TestWindow_Allow(t *testing.T) {
	var w Window
	for i := 0; i < 3; i++ {
		if ok, _ := w.Allow(100, 1000, 3); !ok {
			t.Fatalf("event %d rejected", i)
		}
	}
	ok, retry := w.Allow(400, 1000, 3)
	if ok || retry != 700 {
		t.Fatalf("ok=%v retry=%d", ok, retry)
	}
	if ok, _ := w.Allow(1100, 1000, 3); !ok {
		t.Fatalf("window did not reset")
	}
	if w.Start != 1100 || w.Count != 1 {
		t.Fatalf("window=%+v", w)
	}
}

func TestWindow_Disabled(t *testing.T) {
	var w Window
	for i := 0; i < 10; i++ {
		if ok, _ := w.Allow(int64(i), 0, 1); !ok {
			t.Fatalf("zero span should not limit")
		}
		if ok, _ := w.Allow(int64(i), 10, 0); !ok {
			t.Fatalf("zero max should not limit")
		}
	}
}
