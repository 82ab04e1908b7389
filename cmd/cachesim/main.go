// Command cachesim replays a key trace through a bounded cache and reports
// how well the chosen eviction policy did.
//
// The trace holds one key per line. Each key is read from the cache and
// stored on a miss, the way a read-through cache would behave.
//
//	cachesim -policy lfuda -capacity 1000 -trace keys.txt
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	boundcache "github.com/OrlovEvgeny/go-boundcache"
)

type store interface {
	Get(key string) (int, error)
	Set(key string, value int) error
	Len() int
	CurrentSize() int64
	Metrics() boundcache.MetricsSnapshot
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "cachesim:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cachesim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		policy   = fs.String("policy", "lfu", "eviction policy: lfu, lfuda, lru, rr, ttl")
		capacity = fs.Int64("capacity", 1000, "maximum number of cached keys")
		trace    = fs.String("trace", "-", "trace file with one key per line, - for stdin")
		ttl      = fs.Duration("ttl", time.Minute, "entry lifetime for the ttl policy")
		verbose  = fs.Bool("v", false, "log every eviction to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	c, err := newStore(*policy, *capacity, *ttl, logger)
	if err != nil {
		return err
	}

	in := stdin
	if *trace != "-" {
		f, err := os.Open(*trace)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	n, err := replay(c, in)
	if err != nil {
		return err
	}

	m := c.Metrics()
	fmt.Fprintf(stdout, "policy:    %s\n", *policy)
	fmt.Fprintf(stdout, "requests:  %d\n", n)
	fmt.Fprintf(stdout, "hits:      %d\n", m.Hits)
	fmt.Fprintf(stdout, "misses:    %d\n", m.Misses)
	fmt.Fprintf(stdout, "evictions: %d\n", m.Evictions)
	fmt.Fprintf(stdout, "entries:   %d/%d\n", c.Len(), *capacity)
	fmt.Fprintf(stdout, "hit ratio: %.2f%%\n", 100*m.HitRatio)
	return nil
}

func newStore(policy string, capacity int64, ttl time.Duration, logger *slog.Logger) (store, error) {
	opts := []boundcache.Option[string, int]{boundcache.WithLogger[string, int](logger)}
	switch strings.ToLower(policy) {
	case "lfu":
		return boundcache.NewLFU(capacity, opts...), nil
	case "lfuda":
		return boundcache.NewLFUDA(capacity, opts...), nil
	case "lru":
		return boundcache.NewLRU(capacity, opts...), nil
	case "rr":
		return boundcache.NewRR(capacity, opts...), nil
	case "ttl":
		opts = append(opts, boundcache.WithCoarseClock[string, int]())
		return boundcache.NewTTL(capacity, ttl, opts...), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}

// replay runs the trace through c and returns the number of requests.
func replay(c store, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" || strings.HasPrefix(key, "#") {
			continue
		}
		n++

		_, err := c.Get(key)
		if err == nil {
			continue
		}
		if !errors.Is(err, boundcache.ErrKeyNotFound) {
			return n, err
		}
		if err := c.Set(key, n); err != nil {
			return n, err
		}
	}
	return n, scanner.Err()
}
