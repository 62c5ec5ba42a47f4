package wikirt

import (
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Direction marks which side of a pipeline stage an event was recorded on.
type Direction int

// Event directions.
const (
	DirIn  Direction = iota // tokens entering a stage
	DirOut                  // the stage's transformed output for the batch
)

// Event is one recorded pipeline observation from a flat, globally ordered
// log. Events of distinct pipelines may interleave arbitrarily; events of
// one pipeline appear in their original relative order.
type Event struct {
	Pipeline int
	Dir      Direction
	Payload  string
	Line     int // 1-based position in the recorded log
}

// eventLineRe matches the fixed-format leading token of a generated
// transcript line: a bracketed pipeline id, a direction, a pipe, and the
// payload.
var eventLineRe = regexp.MustCompile(`^\[(\d+)\]\s*(IN|OUT)\s*\|\s?(.*)$`)

// ParseEventLine extracts an event from one recorded line. Lines with no
// extractable pipeline id report ok=false and are dropped from pipeline
// processing.
func ParseEventLine(line string, lineNo int) (Event, bool) {
	m := eventLineRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits, but too many of them to hold an id.
		return Event{}, false
	}
	dir := DirIn
	if m[2] == "OUT" {
		dir = DirOut
	}
	return Event{Pipeline: id, Dir: dir, Payload: m[3], Line: lineNo}, true
}

// Result aggregates replay outcomes.
type Result struct {
	Passed  int
	Failed  int
	Skipped int
	// TransformTime is the accumulated wall-clock time spent strictly
	// inside transformer Process calls.
	TransformTime time.Duration
}

// merge folds other into r.
func (r *Result) merge(other Result) {
	r.Passed += other.Passed
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.TransformTime += other.TransformTime
}

// Validator checks one pending batch against a recorded output payload and
// reports whether it matched. The reconciler calls it once per OUT event.
type Validator func(pipeline int, batch []Token, expected string) (ok bool, transform time.Duration)

// demux fans a flat event log into one FIFO channel per pipeline id,
// preserving each pipeline's recorded order. The returned slice is indexed
// by pipeline id; ids with no events hold nil. Channels come back filled
// and closed: a scheduler drains them in ascending id order for a
// deterministic single-threaded replay, or hands each to its own goroutine
// for a parallel one.
func demux(events []Event) []chan Event {
	maxID := -1
	counts := make(map[int]int)
	for _, ev := range events {
		if ev.Pipeline > maxID {
			maxID = ev.Pipeline
		}
		counts[ev.Pipeline]++
	}
	if maxID < 0 {
		return nil
	}
	queues := make([]chan Event, maxID+1)
	for id, n := range counts {
		queues[id] = make(chan Event, n)
	}
	for _, ev := range events {
		queues[ev.Pipeline] <- ev
	}
	for _, q := range queues {
		if q != nil {
			close(q)
		}
	}
	return queues
}

// Reconcile replays a flat event log deterministically: pipelines validate
// in ascending id order regardless of how their events interleaved when
// recorded, and each pipeline's IN/OUT pairs replay in original relative
// order. Every recognized event is processed exactly once.
//
// IN payloads accumulate into a pending batch; each OUT payload triggers
// one validation of the pending batch and clears it. Malformed IN tokens
// are skipped with a diagnostic, never fatal for the batch.
func Reconcile(env *Env, events []Event, validate Validator) Result {
	return reconcileEvents(env, events, validate, nil)
}

// reconcileEvents is Reconcile with an optional per-event observer, invoked
// for every event as its pipeline replay reaches it.
func reconcileEvents(env *Env, events []Event, validate Validator, observe func(Event)) Result {
	var res Result
	for _, queue := range demux(events) {
		if queue == nil {
			continue
		}
		res.merge(replayPipeline(env, queue, validate, observe))
	}
	return res
}

// replayPipeline drains one pipeline's event channel in order.
func replayPipeline(env *Env, queue <-chan Event, validate Validator, observe func(Event)) Result {
	var res Result
	var batch []Token
	for ev := range queue {
		if observe != nil {
			observe(ev)
		}
		switch ev.Dir {
		case DirIn:
			tok, err := DecodeToken(ev.Payload)
			if err != nil {
				env.logf("skipping malformed token", "line", ev.Line, "err", err)
				continue
			}
			batch = append(batch, tok)
		case DirOut:
			ok, dt := validate(ev.Pipeline, batch, ev.Payload)
			res.TransformTime += dt
			if ok {
				res.Passed++
			} else {
				res.Failed++
			}
			batch = nil
		}
	}
	return res
}

// ReconcileParallel replays the same log with one goroutine per pipeline,
// each owning a chain acquired from the pool, so no transformer state is
// ever shared between pipelines. Per-pipeline outcomes are merged in
// ascending id order; the aggregate result is identical to Reconcile with
// an equivalent validator.
func ReconcileParallel(env *Env, events []Event, pool *ChainPool, opts *TransformOptions) Result {
	queues := demux(events)

	type outcome struct {
		pipeline int
		res      Result
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes []outcome
	)
	for id, queue := range queues {
		if queue == nil {
			continue
		}
		wg.Add(1)
		go func(id int, queue <-chan Event) {
			defer wg.Done()
			chain := pool.Acquire()
			defer pool.Release(chain)

			res := replayPipeline(env, queue, func(_ int, batch []Token, expected string) (bool, time.Duration) {
				start := time.Now()
				out := chain.Process(batch, opts)
				dt := time.Since(start)
				return NormalizeResult(EncodeTokens(out)) == NormalizeResult(expected), dt
			}, nil)
			mu.Lock()
			outcomes = append(outcomes, outcome{pipeline: id, res: res})
			mu.Unlock()
		}(id, queue)
	}
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].pipeline < outcomes[j].pipeline })
	var res Result
	for _, o := range outcomes {
		res.merge(o.res)
	}
	return res
}
