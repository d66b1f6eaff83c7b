// Package mocks provides hand-written mocks of the service interfaces for
// handler and middleware tests.
//
// Each mock has one function field per method. A nil field falls back to the
// mock's default values, so tests only set the behavior they care about:
//
//	terms := &mocks.MockTermService{
//	    GetTermFn: func(ctx context.Context, ownerID, termID uuid.UUID) (*domain.Term, error) {
//	        return nil, store.ErrTermNotFound
//	    },
//	}
package mocks
