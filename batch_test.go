package curves_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zephyrtronium/curves"
)

func TestPlotBatch(t *testing.T) {
	srcs := []string{"x^2", "sin(x", "1/x", "foo(x)", "a*x"}
	req := curves.Request{XMin: -2, XMax: 2, Points: 41, Params: map[string]float64{"a": 3}}
	res, err := curves.NewEngine(nil).PlotBatch(context.Background(), srcs, req)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != len(srcs) {
		t.Fatalf("want %d results, got %d", len(srcs), len(res))
	}
	ok := []bool{true, false, true, false, true}
	for i, r := range res {
		if r.Expr != srcs[i] {
			t.Errorf("result %d is for %q, want %q", i, r.Expr, srcs[i])
		}
		if (r.Graph != nil) == (r.Err != nil) {
			t.Errorf("%q: graph %v with error %v", r.Expr, r.Graph, r.Err)
		}
		if (r.Err == nil) != ok[i] {
			t.Errorf("%q: unexpected error state %v", r.Expr, r.Err)
		}
	}
	if n := len(res[2].Graph.Segments); n != 2 {
		t.Errorf("1/x has %d segments in batch", n)
	}
	if y := res[4].Graph.YRange; y != [2]float64{-6, 6} {
		t.Errorf("a*x has y range %v", y)
	}
}

func TestPlotBatchTooLarge(t *testing.T) {
	eng := curves.NewEngine(nil, curves.WithMaxBatch(2))
	_, err := eng.PlotBatch(context.Background(), []string{"x", "x", "x"}, curves.Request{XMin: 0, XMax: 1, Points: 2})
	var berr *curves.BatchTooLargeError
	if !errors.As(err, &berr) {
		t.Fatalf("want BatchTooLargeError, got %v", err)
	}
	if berr.Len != 3 || berr.Max != 2 {
		t.Errorf("wrong error %+v", berr)
	}
}

func TestPlotBatchDefaultLimit(t *testing.T) {
	srcs := make([]string, curves.DefaultMaxBatch+1)
	for i := range srcs {
		srcs[i] = fmt.Sprintf("x + %d", i)
	}
	eng := curves.NewEngine(nil)
	req := curves.Request{XMin: 0, XMax: 1, Points: 2}
	if _, err := eng.PlotBatch(context.Background(), srcs, req); err == nil {
		t.Error("no error past the default limit")
	}
	res, err := eng.PlotBatch(context.Background(), srcs[1:], req)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res {
		if r.Err != nil {
			t.Errorf("%q: %v", r.Expr, r.Err)
		}
	}
}

func TestPlotBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := curves.NewEngine(nil).PlotBatch(ctx, []string{"x", "x^2"}, curves.Request{XMin: 0, XMax: 1, Points: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range res {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%q: want context.Canceled, got %v", r.Expr, r.Err)
		}
	}
}

func TestPlotBatchEmpty(t *testing.T) {
	res, err := curves.NewEngine(nil).PlotBatch(context.Background(), nil, curves.Request{XMin: 0, XMax: 1, Points: 2})
	if err != nil || len(res) != 0 {
		t.Errorf("empty batch gave %v, %v", res, err)
	}
}
