package transform

import (
	"io"
	"testing"

	"sfentool/internal/binpack"
)

type fakeSink struct {
	batches [][]binpack.Record
	closed  bool
}

func (s *fakeSink) WriteBatch(batch []binpack.Record) error {
	var cp = make([]binpack.Record, len(batch))
	copy(cp, batch)
	s.batches = append(s.batches, cp)
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSink) total() int {
	var n = 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestBatchWriterFlushProperty(t *testing.T) {
	var tests = []struct {
		records   int
		threshold int
		flushes   int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 1},
		{6, 3, 2},
		{7, 3, 3},
		{10, 1, 10},
		{5, 100, 1},
	}
	for _, test := range tests {
		var sink = &fakeSink{}
		var bw = newBatchWriter(sink, test.threshold, io.Discard)
		for i := 0; i < test.records; i++ {
			if err := bw.Add(binpack.Record{Score: int16(i)}); err != nil {
				t.Fatal(err)
			}
		}
		if err := bw.Finish(); err != nil {
			t.Fatal(err)
		}
		if sink.total() != test.records {
			t.Error(test, sink.total())
		}
		if len(sink.batches) != test.flushes {
			t.Error(test, len(sink.batches))
		}
		if bw.processed != uint64(test.records) {
			t.Error(test, bw.processed)
		}
	}
}

func TestBatchWriterPreservesOrder(t *testing.T) {
	var sink = &fakeSink{}
	var bw = newBatchWriter(sink, 4, io.Discard)
	for i := 0; i < 11; i++ {
		if err := bw.Add(binpack.Record{Score: int16(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Finish(); err != nil {
		t.Fatal(err)
	}
	var next = int16(0)
	for _, batch := range sink.batches {
		for _, rec := range batch {
			if rec.Score != next {
				t.Fatal(rec.Score, next)
			}
			next++
		}
	}
}
