package quiz

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/zjrosen/dinoguessr/internal/quiz"

// Traced wraps a Provider so every GetQuiz call is recorded as a span.
type Traced struct {
	next   Provider
	tracer trace.Tracer
	name   string
}

// NewTraced wraps next. A nil tracer uses the global tracer provider.
func NewTraced(next Provider, name string, tracer trace.Tracer) *Traced {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Traced{next: next, tracer: tracer, name: name}
}

// GetQuiz implements Provider.
func (t *Traced) GetQuiz(ctx context.Context, d Difficulty) (Quiz, error) {
	ctx, span := t.tracer.Start(ctx, "quiz.GetQuiz", trace.WithAttributes(
		attribute.String("quiz.provider", t.name),
		attribute.String("quiz.difficulty", string(d)),
	))
	defer span.End()

	q, err := t.next.GetQuiz(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return q, err
	}
	span.SetAttributes(attribute.Int("quiz.questions", q.Len()))
	return q, nil
}
