package generation

import (
	"context"

	"github.com/phrazzld/spark-api/internal/domain"
)

// stubTextProvider is a deterministic TextProvider for tests. It records the
// last request it saw and replays a canned response.
type stubTextProvider struct {
	response string
	err      error
	calls    int
	lastReq  TextRequest
}

func (s *stubTextProvider) GenerateText(_ context.Context, req TextRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubStructuredProvider is a deterministic StructuredAuditProvider.
type stubStructuredProvider struct {
	response string
	err      error
	calls    int
	lastReq  TextRequest
}

func (s *stubStructuredProvider) GenerateAuditJSON(_ context.Context, req TextRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubImageProvider is a deterministic ImageProvider.
type stubImageProvider struct {
	data       []byte
	err        error
	calls      int
	lastPrompt string
}

func (s *stubImageProvider) GenerateImage(_ context.Context, prompt string, _ string) ([]byte, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

// validAuditJSON is a well-formed audit response used across tests.
const validAuditJSON = `{
	"headline": 82, "quality": 78, "emotion": 85, "trending": 70,
	"viralPotential": 80, "overall": 79,
	"suggestions": ["缩短开头", "增加互动提问", "补充具体数字"],
	"pros": ["情绪充沛", "节奏好", "标签贴切"],
	"sensitiveWords": []
}`

func registryWith(p domain.Provider, provider TextProvider) *Registry {
	r := NewRegistry()
	r.Register(p, provider)
	return r
}
