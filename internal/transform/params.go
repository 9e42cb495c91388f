package transform

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
)

type NudgedStaticMode int

const (
	ModeAbsolute NudgedStaticMode = iota
	ModeRelative
	ModeInterpolate
)

func (m NudgedStaticMode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeRelative:
		return "relative"
	case ModeInterpolate:
		return "interpolate"
	}
	return "unknown"
}

type NudgedStaticParams struct {
	InputFilename    string
	OutputFilename   string
	Mode             NudgedStaticMode
	AbsoluteNudge    int
	RelativeNudge    float64
	InterpolateNudge float64
}

func newNudgedStaticParams() NudgedStaticParams {
	return NudgedStaticParams{
		InputFilename:    "in.bin",
		OutputFilename:   "out.bin",
		Mode:             ModeAbsolute,
		AbsoluteNudge:    5,
		RelativeNudge:    0.1,
		InterpolateNudge: 0.1,
	}
}

// parseNudgedStaticParams consumes a tokenized argument stream. Each
// recognized key consumes the following token as its value; unknown tokens
// are ignored for forward compatibility.
func parseNudgedStaticParams(tokens []string) NudgedStaticParams {
	var params = newNudgedStaticParams()
	var cursor = tokenCursor{tokens: tokens}
	for {
		var token, ok = cursor.next()
		if !ok {
			break
		}
		switch token {
		case "absolute":
			params.Mode = ModeAbsolute
			params.AbsoluteNudge = cursor.nextInt(params.AbsoluteNudge)
		case "relative":
			params.Mode = ModeRelative
			params.RelativeNudge = cursor.nextFloat(params.RelativeNudge)
		case "interpolate":
			params.Mode = ModeInterpolate
			params.InterpolateNudge = cursor.nextFloat(params.InterpolateNudge)
		case "input_file":
			params.InputFilename = cursor.nextString(params.InputFilename)
		case "output_file":
			params.OutputFilename = cursor.nextString(params.OutputFilename)
		}
	}
	return params
}

func (params *NudgedStaticParams) enforceConstraints() {
	if params.RelativeNudge < 0 {
		params.RelativeNudge = 0
	}
	if params.AbsoluteNudge < 0 {
		params.AbsoluteNudge = 0
	}
}

func (params *NudgedStaticParams) echo(w io.Writer) {
	fmt.Fprintf(w, "Performing transform nudged_static with parameters:\n")
	fmt.Fprintf(w, "input_file          : %v\n", params.InputFilename)
	fmt.Fprintf(w, "output_file         : %v\n", params.OutputFilename)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "mode                : %v\n", params.Mode)
	switch params.Mode {
	case ModeAbsolute:
		fmt.Fprintf(w, "absolute_nudge      : %v\n", params.AbsoluteNudge)
	case ModeRelative:
		fmt.Fprintf(w, "relative_nudge      : %v\n", params.RelativeNudge)
	case ModeInterpolate:
		fmt.Fprintf(w, "interpolate_nudge   : %v\n", params.InterpolateNudge)
	}
	fmt.Fprintf(w, "\n")
}

type RescoreFenParams struct {
	InputFilename  string
	OutputFilename string
	Depth          int
	Threads        int
}

func newRescoreFenParams() RescoreFenParams {
	return RescoreFenParams{
		InputFilename:  "in.epd",
		OutputFilename: "out.bin",
		Depth:          3,
		Threads:        runtime.NumCPU(),
	}
}

func parseRescoreFenParams(tokens []string) RescoreFenParams {
	var params = newRescoreFenParams()
	var cursor = tokenCursor{tokens: tokens}
	for {
		var token, ok = cursor.next()
		if !ok {
			break
		}
		switch token {
		case "depth":
			params.Depth = cursor.nextInt(params.Depth)
		case "threads":
			params.Threads = cursor.nextInt(params.Threads)
		case "input_file":
			params.InputFilename = cursor.nextString(params.InputFilename)
		case "output_file":
			params.OutputFilename = cursor.nextString(params.OutputFilename)
		}
	}
	return params
}

func (params *RescoreFenParams) enforceConstraints() {
	if params.Depth < 1 {
		params.Depth = 1
	}
	if params.Threads < 1 {
		params.Threads = 1
	}
}

func (params *RescoreFenParams) echo(w io.Writer) {
	fmt.Fprintf(w, "Performing transform rescore_fen with parameters:\n")
	fmt.Fprintf(w, "depth               : %v\n", params.Depth)
	fmt.Fprintf(w, "threads             : %v\n", params.Threads)
	fmt.Fprintf(w, "input_file          : %v\n", params.InputFilename)
	fmt.Fprintf(w, "output_file         : %v\n", params.OutputFilename)
	fmt.Fprintf(w, "\n")
}

type tokenCursor struct {
	tokens []string
	index  int
}

func (c *tokenCursor) next() (string, bool) {
	if c.index >= len(c.tokens) {
		return "", false
	}
	var token = c.tokens[c.index]
	c.index++
	return token, true
}

func (c *tokenCursor) nextString(defaultVal string) string {
	var token, ok = c.next()
	if !ok {
		return defaultVal
	}
	return token
}

func (c *tokenCursor) nextInt(defaultVal int) int {
	var token, ok = c.next()
	if !ok {
		return defaultVal
	}
	var v, err = strconv.Atoi(token)
	if err != nil {
		return defaultVal
	}
	return v
}

func (c *tokenCursor) nextFloat(defaultVal float64) float64 {
	var token, ok = c.next()
	if !ok {
		return defaultVal
	}
	var v, err = strconv.ParseFloat(token, 64)
	if err != nil {
		return defaultVal
	}
	return v
}
