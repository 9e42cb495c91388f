package transform

import (
	"context"
	"fmt"

	"sfentool/internal/binpack"
)

const nudgedStaticBatchSize = 1_000_000

func nudgedStatic(ctx context.Context, tc *Context, tokens []string) error {
	var params = parseNudgedStaticParams(tokens)
	params.echo(tc.Output)
	params.enforceConstraints()
	return runNudgedStatic(tc, params)
}

func runNudgedStatic(tc *Context, params NudgedStaticParams) error {
	src, err := binpack.OpenSource(params.InputFilename)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer src.Close()

	sink, err := binpack.CreateSink(params.OutputFilename)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	var bw = newBatchWriter(sink, nudgedStaticBatchSize, tc.Output)
	if err = rescoreStatic(tc.Evaluator, &params, src, bw); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}

// rescoreStatic pulls records in order, recomputes a static evaluation for
// each position and nudges it toward the stored score, which is treated as
// the deep reference value.
func rescoreStatic(evaluator Evaluator, params *NudgedStaticParams,
	src binpack.Source, bw *batchWriter) error {

	for {
		var rec, ok, err = src.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		pos, err := binpack.UnpackPosition(rec.Board)
		if err != nil {
			return err
		}
		var staticEval = saturateToInt16(evaluator.Evaluate(&pos))
		var deepEval = rec.Score
		rec.Score = nudge(params, staticEval, deepEval)
		if err = bw.Add(rec); err != nil {
			return err
		}
	}
	return bw.Finish()
}
