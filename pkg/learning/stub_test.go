package learning

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
)

type inferCall struct {
	System string
	User   string
	Params *openai.ChatCompletionNewParams
}

// stubInferencer answers with fn and records every call.
type stubInferencer struct {
	mu    sync.Mutex
	calls []inferCall
	fn    func(system, user string) (string, error)
}

func (s *stubInferencer) Infer(_ context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, inferCall{System: system, User: user, Params: params})
	s.mu.Unlock()
	return s.fn(system, user)
}

func (s *stubInferencer) callsWithSystem(system string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, c := range s.calls {
		if c.System == system {
			n++
		}
	}
	return n
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

var fixedNow = time.Date(2024, time.March, 5, 14, 30, 15, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
