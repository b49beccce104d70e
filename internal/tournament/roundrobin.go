package tournament

import (
	"context"
	"sync"

	"github.com/lox/pokerforbots-arena/internal/model"
)

// PairResult pairs a round-robin match result with the two entrants that
// played it, since model.MatchResult's Seats slice alone doesn't identify
// which unordered pair produced it when aggregating standings.
type PairResult struct {
	A, B   string
	Result *model.MatchResult
}

// RunRoundRobin plays every unordered pair of entrants as an independent
// heads-up match of cfg.Hands hands (spec.md section 4.4): C(K,2) matches
// total, no stack carry-over between matches (each starts fresh at
// cfg.StartingStack). Matches run with parallelism bounded by
// parallelism (a buffered semaphore channel), generalizing BotPool's
// matchTrigger/sync.WaitGroup worker idiom (internal/server/pool.go) from
// one shared match queue to many independent concurrent matches.
func RunRoundRobin(ctx context.Context, entrants []Entrant, cfg MatchConfig, parallelism int) ([]PairResult, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	type job struct {
		i, j int
	}
	var jobs []job
	for i := 0; i < len(entrants); i++ {
		for j := i + 1; j < len(entrants); j++ {
			jobs = append(jobs, job{i, j})
		}
	}

	results := make([]PairResult, len(jobs))
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for idx, j := range jobs {
		idx, j := idx, j
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			// Each match gets its own seed offset so concurrent matches
			// never share RNG state (spec.md section 5: each hand owns
			// its own generator).
			matchCfg := cfg
			matchCfg.Seed = cfg.Seed + int64(idx)*1_000_000

			res, err := RunHeadsUp(ctx, entrants[j.i], entrants[j.j], matchCfg)
			results[idx] = PairResult{A: entrants[j.i].Model, B: entrants[j.j].Model, Result: res}
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}()
	}
	wg.Wait()

	return results, firstErr
}
