// Package simplecms defines the contracts of a content repository: value
// objects, create and update structs, search criteria, typed errors and the
// service interfaces reachable through Repository.
//
// Implementations live in subpackages:
//
//   - core: the reference implementation over a storage.Store
//   - event: decorators dispatching a before and an after event around every
//     mutating service method
//   - criteria: the handler chain converting criteria into backend queries
//   - storage/memory, storage/postgres: document stores
//   - binary/memory, binary/fs, binary/s3: blob stores for binary file fields
//
// Typical wiring:
//
//	store := memory.New()
//	repo, err := core.New(core.WithStore(store))
//	bus := event.NewBus()
//	decorated := event.Decorate(repo, bus)
//
//	ctx = simplecms.WithUserReference(ctx, simplecms.UserReference{UserID: 14})
//	draft, err := decorated.ContentService().CreateContent(ctx, create, locations)
//
// Every failure is a typed error unwrapping to one of ErrNotFound,
// ErrUnauthorized, ErrInvalidArgument, ErrBadState, ErrNotImplemented or
// ErrContentValidation.
package simplecms
