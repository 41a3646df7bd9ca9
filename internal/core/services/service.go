package services

import "context"

// Service is one use case of the portal. Handlers depend on it so they can be
// tested with stubs.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
