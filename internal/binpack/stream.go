package binpack

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
)

// Source produces a finite sequence of records. Next returns ok=false at end
// of stream.
type Source interface {
	Next() (rec Record, ok bool, err error)
	Close() error
}

// Sink durably appends batches of records.
type Sink interface {
	WriteBatch(batch []Record) error
	Close() error
}

// OpenSource opens a record input file. The format is selected by extension:
// ".bin" fixed binary records, ".plain" text records.
func OpenSource(path string) (Source, error) {
	switch filepath.Ext(path) {
	case ".bin":
		var file, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		return &binSource{file: file, reader: bufio.NewReader(file)}, nil
	case ".plain":
		var file, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		return &plainSource{file: file, scanner: bufio.NewScanner(file)}, nil
	}
	return nil, fmt.Errorf("invalid input file type %v", path)
}

// CreateSink creates a record output file, by extension like OpenSource.
func CreateSink(path string) (Sink, error) {
	switch filepath.Ext(path) {
	case ".bin":
		var file, err = os.Create(path)
		if err != nil {
			return nil, err
		}
		return &binSink{file: file, writer: bufio.NewWriter(file)}, nil
	case ".plain":
		var file, err = os.Create(path)
		if err != nil {
			return nil, err
		}
		return &plainSink{file: file, writer: bufio.NewWriter(file)}, nil
	}
	return nil, fmt.Errorf("invalid output file type %v", path)
}

type binSource struct {
	file   *os.File
	reader *bufio.Reader
}

func (src *binSource) Next() (Record, bool, error) {
	var buf [recordSize]byte
	var _, err = io.ReadFull(src.reader, buf[:])
	if err == io.EOF {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	var rec Record
	copy(rec.Board[:], buf[:32])
	rec.Score = int16(binary.LittleEndian.Uint16(buf[32:]))
	rec.Move = binary.LittleEndian.Uint16(buf[34:])
	rec.Ply = binary.LittleEndian.Uint16(buf[36:])
	rec.Result = int8(buf[38])
	rec.Padding = buf[39]
	return rec, true, nil
}

func (src *binSource) Close() error {
	return src.file.Close()
}

type binSink struct {
	file   *os.File
	writer *bufio.Writer
}

func (snk *binSink) WriteBatch(batch []Record) error {
	for i := range batch {
		var rec = &batch[i]
		var buf [recordSize]byte
		copy(buf[:32], rec.Board[:])
		binary.LittleEndian.PutUint16(buf[32:], uint16(rec.Score))
		binary.LittleEndian.PutUint16(buf[34:], rec.Move)
		binary.LittleEndian.PutUint16(buf[36:], rec.Ply)
		buf[38] = byte(rec.Result)
		buf[39] = rec.Padding
		if _, err := snk.writer.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

func (snk *binSink) Close() error {
	if err := snk.writer.Flush(); err != nil {
		snk.file.Close()
		return err
	}
	return snk.file.Close()
}

type plainSource struct {
	file    *os.File
	scanner *bufio.Scanner
}

func (src *plainSource) Next() (Record, bool, error) {
	var rec Record
	var hasFen = false
	for src.scanner.Scan() {
		var line = src.scanner.Text()
		if line == "e" {
			if !hasFen {
				return Record{}, false, fmt.Errorf("plain record without fen")
			}
			return rec, true, nil
		}
		var key, value, found = strings.Cut(line, " ")
		if !found {
			continue
		}
		switch key {
		case "fen":
			var pos, err = common.NewPositionFromFEN(value)
			if err != nil {
				return Record{}, false, err
			}
			rec.Board = PackPosition(&pos)
			hasFen = true
		case "score":
			var v, err = strconv.Atoi(value)
			if err != nil {
				return Record{}, false, err
			}
			rec.Score = int16(v)
		case "move":
			var m, ok = parseMove(value)
			if !ok {
				return Record{}, false, fmt.Errorf("plain record bad move %v", value)
			}
			rec.Move = m
		case "ply":
			var v, err = strconv.Atoi(value)
			if err != nil {
				return Record{}, false, err
			}
			rec.Ply = uint16(v)
		case "result":
			var v, err = strconv.Atoi(value)
			if err != nil {
				return Record{}, false, err
			}
			rec.Result = int8(v)
		}
	}
	if err := src.scanner.Err(); err != nil {
		return Record{}, false, err
	}
	if hasFen {
		return Record{}, false, fmt.Errorf("plain record truncated")
	}
	return Record{}, false, nil
}

func (src *plainSource) Close() error {
	return src.file.Close()
}

type plainSink struct {
	file   *os.File
	writer *bufio.Writer
}

func (snk *plainSink) WriteBatch(batch []Record) error {
	for i := range batch {
		var rec = &batch[i]
		var pos, err = UnpackPosition(rec.Board)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(snk.writer, "fen %v\nscore %v\nmove %v\nply %v\nresult %v\ne\n",
			pos.String(),
			rec.Score,
			formatMove(rec.Move),
			rec.Ply,
			rec.Result)
		if err != nil {
			return err
		}
	}
	return nil
}

func (snk *plainSink) Close() error {
	if err := snk.writer.Flush(); err != nil {
		snk.file.Close()
		return err
	}
	return snk.file.Close()
}
