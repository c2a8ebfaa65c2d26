package otel_test

import (
	"context"
	"errors"
	"fmt"
	"shareit/infras/otel"
	"shareit/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{
			name:       "infrastructure error fails the span",
			err:        errors.New("pq: connection refused"),
			wantStatus: codes.Error,
			wantEvent:  "exception",
		},
		{
			name:       "not found is a domain outcome",
			err:        failure.NotFound("booking 5 not found"),
			wantStatus: codes.Unset,
			wantEvent:  "domain.failure",
		},
		{
			name:       "wrapped validation is a domain outcome",
			err:        fmt.Errorf("create: %w", failure.Validation("owner cannot book own item")),
			wantStatus: codes.Unset,
			wantEvent:  "domain.failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

			_, scope := tracer.NewScope(context.Background(), "service", "service.Create")
			scope.TraceIfError(tt.err)
			scope.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)
			require.NotEmpty(t, spans[0].Events())
			assert.Equal(t, tt.wantEvent, spans[0].Events()[0].Name)
		})
	}
}

func TestScope_SetAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), "service", "service.ListByOwner")
	scope.SetAttributes(map[string]any{
		"user.id":  int64(7),
		"item.ids": []int64{1, 2},
		"state":    "FUTURE",
	})
	scope.TraceIfError(nil)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes(), 3)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}
