package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/zephyrtronium/curves"
)

func main() {
	log.SetFlags(0)
	var (
		inname       string
		from, to     float64
		points, capy int
		asjson       bool
		strict, verb bool
	)
	with := map[string]float64{}
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`parameter definitions must be "name=value", not %q`, s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(d[1]), 64)
		if err != nil {
			return fmt.Errorf("parameter %s: %w", d[0], err)
		}
		with[strings.TrimSpace(d[0])] = v
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one expression per line (default stdin if no args given)")
	flag.Func("given", "name=value parameter definition (any number of times)", addwith)
	flag.Float64Var(&from, "from", -10, "lower bound of x")
	flag.Float64Var(&to, "to", 10, "upper bound of x")
	flag.IntVar(&points, "n", 500, "number of samples")
	flag.IntVar(&capy, "cache", curves.DefaultCacheCapacity, "expression cache capacity")
	flag.BoolVar(&asjson, "json", false, "print results as JSON")
	flag.BoolVar(&strict, "strict", false, "fail on parameters with no value instead of using 0")
	flag.BoolVar(&verb, "v", false, "log debug information to stderr")
	flag.Parse()
	if verb {
		curves.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if s := strings.TrimSpace(sc.Text()); s != "" {
				srcs = append(srcs, s)
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}
	srcs = append(srcs, flag.Args()...)

	eng := curves.NewEngine(curves.NewCache(capy), curves.WithStrictParams(strict), curves.WithMaxBatch(0))
	req := curves.Request{XMin: from, XMax: to, Points: points, Params: with}
	res, err := eng.PlotBatch(context.Background(), srcs, req)
	if err != nil {
		log.Fatal(err)
	}
	if asjson {
		if err := writeJSON(os.Stdout, res); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, r := range res {
		if r.Err != nil {
			fmt.Printf("%s : %v\n", r.Expr, r.Err)
			continue
		}
		fmt.Printf("%s : %d segments, %d/%d valid points, y in [%g, %g]\n",
			r.Expr, len(r.Graph.Segments), r.Graph.ValidPoints, r.Graph.TotalPoints, r.Graph.YRange[0], r.Graph.YRange[1])
		for i, s := range r.Graph.Segments {
			fmt.Printf("\tsegment %d: %d points, x from %g to %g\n", i, len(s), s[0].X, s[len(s)-1].X)
		}
	}
}

type result struct {
	Expr  string            `json:"expression"`
	Graph *curves.Graph     `json:"graph,omitempty"`
	Err   *curves.ErrorInfo `json:"error,omitempty"`
}

func writeJSON(w io.Writer, res []curves.BatchResult) error {
	out := make([]result, len(res))
	for i, r := range res {
		out[i] = result{Expr: r.Expr, Graph: r.Graph}
		if r.Err != nil {
			info := curves.Describe(r.Err)
			out[i].Err = &info
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}

// infile opens the named input file, or stdin for "-" or when std is set.
// Closing the result of stdin does not close os.Stdin.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
