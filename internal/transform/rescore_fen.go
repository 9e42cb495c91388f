package transform

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"sfentool/internal/binpack"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
	"golang.org/x/sync/errgroup"
)

const rescoreBatchSize = 10_000

// A line shorter than this cannot hold a position descriptor; reading one
// means the source is exhausted.
const minFenLength = 10

func rescoreFen(ctx context.Context, tc *Context, tokens []string) error {
	var params = parseRescoreFenParams(tokens)
	params.echo(tc.Output)
	params.enforceConstraints()
	return runRescoreFen(ctx, tc, params)
}

func runRescoreFen(ctx context.Context, tc *Context, params RescoreFenParams) error {
	file, err := os.Open(params.InputFilename)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	sink, err := binpack.CreateSink(params.OutputFilename)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err = rescoreSearch(ctx, tc, params.Depth, params.Threads, file, sink); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}

type workerStats struct {
	searched int
	skipped  int
}

// rescoreSearch fans FEN lines from input across a fixed pool of search
// workers. A producer goroutine owns the line source, a single writer
// goroutine owns the output batch, so neither needs a lock. Output order
// reflects completion order, not input order.
func rescoreSearch(ctx context.Context, tc *Context, depth, threads int,
	input io.Reader, sink binpack.Sink) error {

	g, ctx := errgroup.WithContext(ctx)

	var fens = make(chan string, 128)
	var results = make(chan binpack.Record, 128)

	g.Go(func() error {
		defer close(fens)
		return loadFens(ctx, input, fens)
	})

	g.Go(func() error {
		var bw = newBatchWriter(sink, rescoreBatchSize, tc.Output)
		for rec := range results {
			if err := bw.Add(rec); err != nil {
				return err
			}
		}
		return bw.Finish()
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			var stats = rescoreWorker(ctx, tc.NewSearcher(), depth, fens, results)
			log.Println("rescore worker finished",
				"searched", stats.searched,
				"skipped", stats.skipped)
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	return g.Wait()
}

func loadFens(ctx context.Context, input io.Reader, fens chan<- string) error {
	var scanner = bufio.NewScanner(input)
	for scanner.Scan() {
		var line = scanner.Text()
		if len(line) < minFenLength {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fens <- line:
		}
	}
	return scanner.Err()
}

func rescoreWorker(ctx context.Context, searcher Searcher, depth int,
	fens <-chan string, results chan<- binpack.Record) workerStats {

	var stats workerStats
	for fen := range fens {
		var pos, err = common.NewPositionFromFEN(fen)
		if err != nil {
			log.Println("parse fen failed",
				"fen", fen,
				"err", err)
			stats.skipped++
			continue
		}
		// Rescoring must not inherit draw-rule state from the source line.
		pos.Rule50 = 0

		stats.searched++
		var si = searcher.Search(ctx, common.SearchParams{
			Positions: []common.Position{pos},
			Limits:    common.LimitsType{Depth: depth},
		})
		if len(si.MainLine) == 0 {
			stats.skipped++
			continue
		}

		var rec = binpack.Record{
			Board:  binpack.PackPosition(&pos),
			Score:  saturateToInt16(scoreToCentipawns(si.Score)),
			Move:   binpack.EncodeMove(si.MainLine[0]),
			Ply:    1,
			Result: 0,
		}

		select {
		case <-ctx.Done():
			return stats
		case results <- rec:
		}
	}
	return stats
}

func scoreToCentipawns(score common.UciScore) int {
	const mateValue = 30_000
	if score.Mate > 0 {
		return mateValue - score.Mate
	}
	if score.Mate < 0 {
		return -mateValue - score.Mate
	}
	return score.Centipawns
}
