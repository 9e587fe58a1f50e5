// Package sweep evaluates a k-NN classifier for a list of candidate k values
// over one fixed train/test split and keeps the best one.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/model"
)

// DefaultKs are the candidate neighbourhood sizes used when none are given.
var DefaultKs = []int{1, 3, 5, 7, 9, 11, 13, 15}

// Score is the accuracy, in percent, obtained with K neighbours.
type Score struct {
	K        int
	Accuracy float64
}

// Result holds per-k scores in candidate order and the best of them.
type Result struct {
	Scores  []Score
	Best    Score
	Elapsed time.Duration
}

// EvalFunc scores one k over a split.
type EvalFunc func(test, train data.Dataset, k int) (float64, error)

// Sweeper runs the evaluation once per candidate k.
type Sweeper struct {
	Ks []int
	// Workers > 1 evaluates k values concurrently. Results are identical to a
	// sequential run.
	Workers int
	Logger  zerolog.Logger
	// Eval defaults to model.Evaluate.
	Eval EvalFunc
}

// New returns a sequential Sweeper over ks, or DefaultKs when ks is empty.
func New(ks ...int) *Sweeper {
	if len(ks) == 0 {
		ks = DefaultKs
	}
	return &Sweeper{Ks: ks, Workers: 1, Logger: zerolog.Nop(), Eval: model.Evaluate}
}

// Run evaluates every k over split. The first error stops the sweep and no
// result is returned.
func (s *Sweeper) Run(ctx context.Context, split data.Split) (*Result, error) {
	if len(s.Ks) == 0 {
		return nil, fmt.Errorf("%w: no k values to evaluate", data.ErrInvalidArgument)
	}
	if len(split.Test) == 0 {
		return nil, fmt.Errorf("%w: empty test set", data.ErrInvalidArgument)
	}
	if len(split.Train) == 0 {
		return nil, fmt.Errorf("%w: empty training set", data.ErrInvalidArgument)
	}
	eval := s.Eval
	if eval == nil {
		eval = model.Evaluate
	}

	start := time.Now()
	scores := make([]Score, len(s.Ks))
	var err error
	if s.Workers > 1 {
		err = s.runParallel(ctx, split, eval, scores)
	} else {
		err = s.runSequential(ctx, split, eval, scores)
	}
	if err != nil {
		return nil, err
	}

	best, err := SelectBest(scores)
	if err != nil {
		return nil, err
	}
	res := &Result{Scores: scores, Best: best, Elapsed: time.Since(start)}
	s.Logger.Info().Int("k", best.K).Float64("accuracy", best.Accuracy).Dur("elapsed", res.Elapsed).Msg("sweep finished")
	return res, nil
}

func (s *Sweeper) evalOne(split data.Split, eval EvalFunc, k int) (Score, error) {
	acc, err := eval(split.Test, split.Train, k)
	if err != nil {
		return Score{}, fmt.Errorf("k=%d: %w", k, err)
	}
	s.Logger.Debug().Int("k", k).Float64("accuracy", acc).Msg("evaluated")
	return Score{K: k, Accuracy: acc}, nil
}

func (s *Sweeper) runSequential(ctx context.Context, split data.Split, eval EvalFunc, scores []Score) error {
	for i, k := range s.Ks {
		if err := ctx.Err(); err != nil {
			return err
		}
		sc, err := s.evalOne(split, eval, k)
		if err != nil {
			return err
		}
		scores[i] = sc
	}
	return nil
}

// runParallel splits the candidate list into contiguous chunks, one per worker.
// Each worker writes only its own slots of scores.
func (s *Sweeper) runParallel(ctx context.Context, split data.Split, eval EvalFunc, scores []Score) error {
	workers := min(s.Workers, runtime.GOMAXPROCS(0), len(s.Ks))
	perWorker := (len(s.Ks) + workers - 1) / workers
	errs := make([]error, len(s.Ks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(s.Ks))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(st, e int) {
			defer wg.Done()
			for i := st; i < e; i++ {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				scores[i], errs[i] = s.evalOne(split, eval, s.Ks[i])
				if errs[i] != nil {
					return
				}
			}
		}(start, end)
	}
	wg.Wait()

	// report the error of the earliest k, as a sequential run would
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// SelectBest returns the first score with the highest accuracy. The running
// maximum starts at zero accuracy on the first score, so a later score must be
// strictly better to replace it.
func SelectBest(scores []Score) (Score, error) {
	if len(scores) == 0 {
		return Score{}, fmt.Errorf("%w: no scores", data.ErrInvalidArgument)
	}
	best := Score{K: scores[0].K}
	for _, sc := range scores {
		if sc.Accuracy > best.Accuracy {
			best = sc
		}
	}
	return best, nil
}
