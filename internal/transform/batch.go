package transform

import (
	"fmt"
	"io"

	"sfentool/internal/binpack"
)

// batchWriter accumulates records up to a capacity threshold, flushes them to
// the sink as one batch and reports the cumulative processed count. It is not
// safe for concurrent use; the owning driver serializes access.
type batchWriter struct {
	sink      binpack.Sink
	capacity  int
	batch     []binpack.Record
	processed uint64
	progress  io.Writer
}

func newBatchWriter(sink binpack.Sink, capacity int, progress io.Writer) *batchWriter {
	return &batchWriter{
		sink:     sink,
		capacity: capacity,
		batch:    make([]binpack.Record, 0, capacity),
		progress: progress,
	}
}

func (bw *batchWriter) Add(rec binpack.Record) error {
	bw.batch = append(bw.batch, rec)
	if len(bw.batch) >= bw.capacity {
		return bw.flush()
	}
	return nil
}

func (bw *batchWriter) flush() error {
	if len(bw.batch) == 0 {
		return nil
	}
	if err := bw.sink.WriteBatch(bw.batch); err != nil {
		return err
	}
	bw.processed += uint64(len(bw.batch))
	bw.batch = bw.batch[:0]
	fmt.Fprintf(bw.progress, "Processed %v positions.\n", bw.processed)
	return nil
}

// Finish flushes the final partial batch and emits the completion message.
func (bw *batchWriter) Finish() error {
	if err := bw.flush(); err != nil {
		return err
	}
	fmt.Fprintf(bw.progress, "Finished.\n")
	return nil
}
