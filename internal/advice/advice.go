// Package advice produces the short status lines shown under the HUD at
// score milestones.
package advice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

// Fixed display strings.
const (
	Initializing = "INITIALIZING AG~3 OS..."
	Ready        = "AG~3 LINK ESTABLISHED. READY."
	Fallback     = "AG~3 SYSTEM ALERT: DATA STREAM INTERRUPTED."
)

// MilestoneStep is the score interval that triggers an advice request.
const MilestoneStep = 50

// ErrFetchFailed wraps every generator failure.
var ErrFetchFailed = errors.New("advice: fetch failed")

// IsMilestone reports whether score should trigger an advice request.
func IsMilestone(score int) bool {
	return score > 0 && score%MilestoneStep == 0
}

// Generator produces one advice line for a score and difficulty.
type Generator interface {
	Advice(ctx context.Context, score int, difficulty string) (string, error)
}

// Phrasebook picks lines from a fixed list.
type Phrasebook struct {
	mu    sync.Mutex
	lines []string
	rng   *rand.Rand
}

// NewPhrasebook creates a phrasebook generator seeded with seed.
func NewPhrasebook(lines []string, seed int64) *Phrasebook {
	return &Phrasebook{
		lines: lines,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Advice returns a random line.
func (p *Phrasebook) Advice(ctx context.Context, score int, difficulty string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.lines) == 0 {
		return "", errors.New("advice: phrasebook is empty")
	}
	p.mu.Lock()
	i := p.rng.Intn(len(p.lines))
	p.mu.Unlock()
	return p.lines[i], nil
}

// Request is one advice request tagged with its id.
type Request struct {
	ID         uint64
	Score      int
	Difficulty string
}

// Response carries the text for a request.
type Response struct {
	ID   uint64
	Text string
	Err  error // set when Text is the fallback
}

// Desk issues advice requests and accepts only the latest response.
// Request and Accept run on the game's update loop. Fetch may run on any
// goroutine.
type Desk struct {
	gen    Generator
	latest uint64
}

// NewDesk creates a desk backed by gen. A nil gen disables advice.
func NewDesk(gen Generator) *Desk {
	return &Desk{gen: gen}
}

// Enabled reports whether the desk has a generator.
func (d *Desk) Enabled() bool {
	return d.gen != nil
}

// Request issues a new request id, superseding any request in flight.
func (d *Desk) Request(score int, difficulty string) Request {
	d.latest++
	return Request{ID: d.latest, Score: score, Difficulty: difficulty}
}

// Invalidate drops every request in flight.
func (d *Desk) Invalidate() {
	d.latest++
}

// Fetch calls the generator. Errors are converted into the fallback text.
func (d *Desk) Fetch(ctx context.Context, req Request) Response {
	if d.gen == nil {
		return Response{ID: req.ID, Text: Fallback, Err: ErrFetchFailed}
	}
	text, err := d.gen.Advice(ctx, req.Score, req.Difficulty)
	if err != nil {
		return Response{ID: req.ID, Text: Fallback, Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}
	if text == "" {
		return Response{ID: req.ID, Text: Fallback, Err: fmt.Errorf("%w: empty response", ErrFetchFailed)}
	}
	return Response{ID: req.ID, Text: text}
}

// Accept reports whether resp answers the latest request.
func (d *Desk) Accept(resp Response) bool {
	return resp.ID == d.latest
}
