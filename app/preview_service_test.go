package app

import (
	"context"
	"strings"
	"testing"

	"ilmakase/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestPreviewService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		contents []string
		wantCode string
	}{
		{
			name:     "empty list",
			contents: nil,
			wantCode: errors.CodeValidationError,
		},
		{
			name:     "blank item",
			contents: []string{"   "},
			wantCode: errors.CodeValidationError,
		},
		{
			name:     "too short",
			contents: []string{"짧은 일지"},
			wantCode: errors.CodeValidationError,
		},
		{
			name:     "too long",
			contents: []string{strings.Repeat("a", 501)},
			wantCode: errors.CodeValidationError,
		},
		{
			name:     "second item invalid",
			contents: []string{"오늘은 로그인 API를 구현했습니다", "short"},
			wantCode: errors.CodeValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			svc := NewPreviewService(analyzer)

			result, err := svc.Preview(context.Background(), tt.contents)
			if result != nil {
				t.Fatalf("expected nil result, got %+v", result)
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
			if analyzer.previewCalls != 0 {
				t.Errorf("AI provider must not be invoked on invalid input, got %d calls", analyzer.previewCalls)
			}
		})
	}
}

func TestPreviewService_BoundaryLengths(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewPreviewService(analyzer)

	exactMin := strings.Repeat("가", PreviewMinLength)
	exactMax := strings.Repeat("b", PreviewMaxLength)

	result, err := svc.Preview(context.Background(), []string{exactMin, exactMax})
	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, analyzer.previewCalls)
}

func TestPreviewService_TrimsBeforeForwarding(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewPreviewService(analyzer)

	_, err := svc.Preview(context.Background(), []string{"  오늘은 배포 자동화 스크립트를 작성했다  "})
	assert.NoError(t, err)
	assert.Equal(t, []string{"오늘은 배포 자동화 스크립트를 작성했다"}, analyzer.lastContents)
}
