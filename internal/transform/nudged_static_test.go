package transform

import (
	"io"
	"testing"

	"sfentool/internal/binpack"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
)

type fakeSource struct {
	records []binpack.Record
	index   int
}

func (s *fakeSource) Next() (binpack.Record, bool, error) {
	if s.index >= len(s.records) {
		return binpack.Record{}, false, nil
	}
	var rec = s.records[s.index]
	s.index++
	return rec, true, nil
}

func (s *fakeSource) Close() error { return nil }

type constEvaluator int

func (e constEvaluator) Evaluate(p *common.Position) int { return int(e) }

func startposRecord(t *testing.T, score int16) binpack.Record {
	t.Helper()
	var pos, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	return binpack.Record{Board: binpack.PackPosition(&pos), Score: score, Ply: 1}
}

func TestRescoreStatic(t *testing.T) {
	var src = &fakeSource{records: []binpack.Record{
		startposRecord(t, 200),
		startposRecord(t, 50),
		startposRecord(t, 100),
	}}
	var sink = &fakeSink{}
	var bw = newBatchWriter(sink, 2, io.Discard)

	var params = newNudgedStaticParams()
	params.Mode = ModeAbsolute
	params.AbsoluteNudge = 10

	// stored score acts as the deep reference, static eval is recomputed
	var err = rescoreStatic(constEvaluator(100), &params, src, bw)
	if err != nil {
		t.Fatal(err)
	}

	if sink.total() != 3 || len(sink.batches) != 2 {
		t.Fatal(sink.batches)
	}
	var want = []int16{110, 90, 100}
	var i = 0
	for _, batch := range sink.batches {
		for _, rec := range batch {
			if rec.Score != want[i] {
				t.Error(i, rec.Score, want[i])
			}
			// only the score field changes
			if rec.Ply != 1 || rec.Result != 0 {
				t.Error(rec)
			}
			i++
		}
	}
}
