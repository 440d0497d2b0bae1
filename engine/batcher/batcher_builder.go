package batcher

import "log/slog"

// BatcherBuilderOption is a functional option applied to a batcher during construction via NewBatcher.
type BatcherBuilderOption func(*batcher)

// WithMaxQuads sets the number of sprites batched before an implicit flush. The value must lie in
// [1, MaxIndexableQuads]; NewBatcher rejects anything else with ErrCapacityOutOfRange.
//
// Parameters:
//   - n: the quad capacity (default DefaultMaxQuads)
//
// Returns:
//   - BatcherBuilderOption: a function that applies the capacity to a batcher
func WithMaxQuads(n int) BatcherBuilderOption {
	return func(b *batcher) {
		b.maxQuads = n
	}
}

// WithLogger sets the logger used by this batcher instead of the package-wide logger.
//
// Parameters:
//   - l: the logger to use
//
// Returns:
//   - BatcherBuilderOption: a function that applies the logger to a batcher
func WithLogger(l *slog.Logger) BatcherBuilderOption {
	return func(b *batcher) {
		b.logger = l
	}
}

// WithLabel sets the debug label used for device buffers and log records.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - BatcherBuilderOption: a function that applies the label to a batcher
func WithLabel(label string) BatcherBuilderOption {
	return func(b *batcher) {
		b.label = label
	}
}
