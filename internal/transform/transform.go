package transform

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
	"github.com/ChizhovVadim/CounterGo/pkg/engine"
	eval "github.com/ChizhovVadim/CounterGo/pkg/eval/counter"
)

// Evaluator is the static evaluation collaborator.
type Evaluator interface {
	Evaluate(p *common.Position) int
}

// Searcher is the bounded-search collaborator. Limits are passed per call;
// the searcher must not rely on process-wide configuration.
type Searcher interface {
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

// Context carries the external collaborators the drivers need. Each rescoring
// worker builds its own Searcher, search state is not shareable.
type Context struct {
	Evaluator   Evaluator
	NewSearcher func() Searcher
	Output      io.Writer
}

var evalOnce sync.Once
var evalService *eval.EvaluationService

func sharedEvaluator() *eval.EvaluationService {
	evalOnce.Do(func() {
		evalService = eval.NewEvaluationService()
	})
	return evalService
}

func NewContext() *Context {
	return &Context{
		Evaluator: sharedEvaluator(),
		NewSearcher: func() Searcher {
			var eng = engine.NewEngine(func() engine.Evaluator {
				return eval.NewEvaluationService()
			})
			eng.Hash = 16
			eng.Threads = 1
			return eng
		},
		Output: os.Stdout,
	}
}

var subcommands = map[string]func(ctx context.Context, tc *Context, tokens []string) error{
	"nudged_static": nudgedStatic,
	"rescore_fen":   rescoreFen,
}

// Run dispatches a transform subcommand. An unknown subcommand is reported
// without touching any files.
func Run(ctx context.Context, tc *Context, args []string) error {
	sharedEvaluator()

	if len(args) == 0 {
		return fmt.Errorf("transform: subcommand expected")
	}
	var handler, found = subcommands[args[0]]
	if !found {
		return fmt.Errorf("invalid subcommand %v", args[0])
	}
	return handler(ctx, tc, args[1:])
}
