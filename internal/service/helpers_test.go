package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// fakeGenerator is a scriptable Generator used across the service tests.
// Replies can be fixed strings or computed per call; every call is counted.
type fakeGenerator struct {
	mu sync.Mutex

	textReply  string
	textErr    error
	textFunc   func(prompt string) (string, error)
	textCalls  int
	lastPrompt string

	visionReply  string
	visionErr    error
	visionFunc   func(prompt string, images [][]byte) (string, error)
	visionCalls  int
	lastImageLen int
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textCalls++
	f.lastPrompt = prompt
	if f.textFunc != nil {
		return f.textFunc(prompt)
	}
	return f.textReply, f.textErr
}

func (f *fakeGenerator) GenerateVision(_ context.Context, prompt string, images [][]byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visionCalls++
	f.lastPrompt = prompt
	f.lastImageLen = len(images)
	if f.visionFunc != nil {
		return f.visionFunc(prompt, images)
	}
	return f.visionReply, f.visionErr
}

func (f *fakeGenerator) calls() (text, vision int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.textCalls, f.visionCalls
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
