// Command catalog-ingest imports supplier catalog feeds into the products
// table. Feeds are gzip-compressed NDJSON files, one product per line; all
// feeds are streamed concurrently and the first feed to carry a product id
// wins.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/eliteemart/storefront/internal/domain/product"
	"github.com/eliteemart/storefront/internal/storage/postgres"
)

const (
	dedupeCapacity = 1_000_000
	dedupeFPR      = 0.001
	progressEvery  = 10_000
)

type feedProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// dedupe tracks product ids already accepted across feeds. The bloom filter
// screens most lookups; a positive hit is confirmed against the exact set
// because bloom positives can be false.
type dedupe struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	seen   map[string]struct{}
}

func newDedupe() *dedupe {
	return &dedupe{
		filter: bloom.NewWithEstimates(dedupeCapacity, dedupeFPR),
		seen:   make(map[string]struct{}),
	}
}

// claim marks id as taken and reports whether this caller won it.
func (d *dedupe) claim(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.filter.TestString(id) {
		if _, ok := d.seen[id]; ok {
			return false
		}
	}
	d.filter.AddString(id)
	d.seen[id] = struct{}{}
	return true
}

func main() {
	var (
		feedDir     string
		databaseURL string
	)

	flag.StringVar(&feedDir, "feed-dir", "feeds", "directory containing *.ndjson.gz catalog feeds")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, feedDir, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, feedDir, databaseURL string) error {
	feeds, err := filepath.Glob(filepath.Join(feedDir, "*.ndjson.gz"))
	if err != nil {
		return errors.Wrap(err, "list feeds")
	}
	if len(feeds) == 0 {
		return errors.Errorf("no *.ndjson.gz feeds in %s", feedDir)
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewProductRepository(pool)
	dd := newDedupe()

	slog.Info("ingesting feeds", slog.Int("feeds", len(feeds)))

	g, ctx := errgroup.WithContext(ctx)
	for _, feed := range feeds {
		g.Go(ingestFeed(ctx, feed, repo, dd))
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("ingest done", slog.Int("products", len(dd.seen)))
	return nil
}

func ingestFeed(ctx context.Context, path string, repo *postgres.ProductRepository, dd *dedupe) func() error {
	return func() error {
		name := filepath.Base(path)
		var lines, accepted, skipped uint64

		err := streamGzFile(ctx, path, func(line []byte) error {
			lines++
			if lines%progressEvery == 0 {
				slog.Info("feed progress",
					slog.String("feed", name),
					slog.Uint64("lines", lines),
					slog.Uint64("accepted", accepted),
				)
			}

			var fp feedProduct
			if err := json.Unmarshal(line, &fp); err != nil {
				// Malformed lines are counted and skipped, never fatal.
				skipped++
				return nil
			}
			if fp.ID == "" || fp.Name == "" {
				skipped++
				return nil
			}

			if !dd.claim(fp.ID) {
				return nil
			}

			if err := repo.Upsert(ctx, product.Product{
				ID:       fp.ID,
				Name:     fp.Name,
				Price:    fp.Price,
				ImageURL: fp.Image,
			}); err != nil {
				return errors.Wrapf(err, "upsert product %s", fp.ID)
			}
			accepted++
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "ingest feed %s", name)
		}

		slog.Info("feed complete",
			slog.String("feed", name),
			slog.Uint64("lines", lines),
			slog.Uint64("accepted", accepted),
			slog.Uint64("skipped", skipped),
		)
		return nil
	}
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Bytes()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}
