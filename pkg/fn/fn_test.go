package fn

import (
	"errors"
	"sort"
	"strconv"
	"testing"
)

// --- Result ---

func TestOkAndErr(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatal("Ok should be ok")
	}
	v, err := r.Unwrap()
	if v != 42 || err != nil {
		t.Fatal("wrong unwrap")
	}

	e := Err[int](errors.New("fail"))
	if e.IsOk() || !e.IsErr() {
		t.Fatal("Err should be err")
	}
}

func TestFromPair(t *testing.T) {
	if FromPair(1, nil).IsErr() {
		t.Fatal("nil error should be Ok")
	}
	if FromPair(1, errors.New("x")).IsOk() {
		t.Fatal("error should be Err")
	}
}

func TestUnwrapOr(t *testing.T) {
	if Ok(1).UnwrapOr(9) != 1 {
		t.Fatal("should return value")
	}
	if Err[int](errors.New("x")).UnwrapOr(9) != 9 {
		t.Fatal("should return fallback")
	}
}

func TestCollect(t *testing.T) {
	all := Collect([]Result[int]{Ok(1), Ok(2), Ok(3)})
	vals, err := all.Unwrap()
	if err != nil || len(vals) != 3 {
		t.Fatalf("unexpected collect: %v %v", vals, err)
	}

	bad := Collect([]Result[int]{Ok(1), Err[int](errors.New("boom")), Ok(3)})
	if bad.IsOk() {
		t.Fatal("collect with error should be Err")
	}
}

// --- FanOut ---

func TestFanOutPreservesOrder(t *testing.T) {
	out := FanOut(
		func() string { return "a" },
		func() string { return "b" },
		func() string { return "c" },
	)
	if len(out) != 3 || out[0] != "a" || out[1] != "b" || out[2] != "c" {
		t.Fatalf("wrong order: %v", out)
	}
}

func TestFanOutRunsAll(t *testing.T) {
	fns := make([]func() int, 10)
	for i := range fns {
		i := i
		fns[i] = func() int { return i }
	}
	out := FanOut(fns...)
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("missing value %d in %v", i, out)
		}
	}
}

func TestFanOutResult(t *testing.T) {
	r := FanOutResult(
		func() Result[string] { return Ok(strconv.Itoa(1)) },
		func() Result[string] { return Ok(strconv.Itoa(2)) },
	)
	vals, err := r.Unwrap()
	if err != nil || len(vals) != 2 {
		t.Fatalf("unexpected: %v %v", vals, err)
	}

	bad := FanOutResult(
		func() Result[string] { return Ok("x") },
		func() Result[string] { return Err[string](errors.New("boom")) },
	)
	if bad.IsOk() {
		t.Fatal("expected first error to surface")
	}
}
