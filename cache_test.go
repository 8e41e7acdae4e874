package curves_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/zephyrtronium/curves"
)

func mustCompile(t *testing.T, src string) *curves.Expr {
	t.Helper()
	e, err := curves.Compile(src)
	if err != nil {
		t.Fatalf("%q failed to compile: %v", src, err)
	}
	return e
}

func TestCacheNew(t *testing.T) {
	c := curves.NewCache(10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	for _, n := range []int{0, -1} {
		c := curves.NewCache(n)
		if got := c.Capacity(); got != curves.DefaultCacheCapacity {
			t.Errorf("NewCache(%d): expected default capacity %d, got %d", n, curves.DefaultCacheCapacity, got)
		}
	}
}

func TestCacheSetGet(t *testing.T) {
	c := curves.NewCache(4)
	expr := mustCompile(t, "sin(x)")
	c.Set("sin(x)", expr)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("sin(x)")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != expr {
		t.Fatal("expected same expression pointer")
	}
}

func TestCacheMiss(t *testing.T) {
	c := curves.NewCache(4)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheReplace(t *testing.T) {
	c := curves.NewCache(4)
	a, b := mustCompile(t, "x"), mustCompile(t, "x")
	c.Set("k", a)
	c.Set("k", b)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry after replace, got %d", got)
	}
	if got, _ := c.Get("k"); got != b {
		t.Fatal("expected replaced expression")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := curves.NewCache(3)
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, mustCompile(t, "x"))
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal(`expected "a" to be evicted (LRU)`)
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatal(`expected most-recently-inserted "d" to survive`)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("expected 1 eviction, got %d", got)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := curves.NewCache(3)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(k, mustCompile(t, "x"))
	}
	// Touch "a" so that "b" becomes least recently used.
	if _, ok := c.Get("a"); !ok {
		t.Fatal(`expected "a" present`)
	}
	c.Set("d", mustCompile(t, "x"))
	if _, ok := c.Get("b"); ok {
		t.Fatal(`expected "b" to be evicted`)
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %q to survive", k)
		}
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := curves.NewCache(4)
	c.Set("k", mustCompile(t, "x"))
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Invalidate")
	}
	// Invalidating a missing key is harmless.
	c.Invalidate("k")
}

func TestCacheClear(t *testing.T) {
	c := curves.NewCache(4)
	for _, k := range []string{"a", "b"} {
		c.Set(k, mustCompile(t, "x"))
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", got)
	}
	c.Set("c", mustCompile(t, "x"))
	if _, ok := c.Get("c"); !ok {
		t.Fatal("expected cache usable after Clear")
	}
}

func TestCacheStats(t *testing.T) {
	c := curves.NewCache(4)
	c.Set("k", mustCompile(t, "x"))
	c.Get("k")
	c.Get("k")
	c.Get("nope")
	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Evictions != 0 {
		t.Errorf("wrong stats %+v", s)
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := curves.NewCache(4)
	calls := 0
	compile := func() (*curves.Expr, error) {
		calls++
		return curves.Compile("x^2")
	}
	a, err := c.GetOrCompile("x^2", compile)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.GetOrCompile("x^2", compile)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected same expression from second call")
	}
	if calls != 1 {
		t.Errorf("expected 1 compilation, got %d", calls)
	}
}

func TestCacheGetOrCompileError(t *testing.T) {
	c := curves.NewCache(4)
	calls := 0
	compile := func() (*curves.Expr, error) {
		calls++
		return curves.Compile("sin(x")
	}
	for i := 0; i < 2; i++ {
		e, err := c.GetOrCompile("sin(x", compile)
		var perr *curves.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("want ParseError, got %v with %v", err, e)
		}
	}
	if calls != 2 {
		t.Errorf("expected errors not to be cached, got %d compilations", calls)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("expected empty cache, got %d", got)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := curves.NewCache(8)
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				src := fmt.Sprintf("x + %d", (g+i)%12)
				e, err := c.GetOrCompile(src, func() (*curves.Expr, error) {
					return curves.Compile(src)
				})
				if err != nil {
					t.Errorf("%q: %v", src, err)
					return
				}
				if e.String() != src {
					t.Errorf("got %q for key %q", e.String(), src)
					return
				}
				if i%50 == 0 {
					c.Invalidate(src)
				}
			}
		}(g)
	}
	wg.Wait()
	if n := c.Len(); n > c.Capacity() {
		t.Errorf("cache grew to %d past capacity %d", n, c.Capacity())
	}
}
