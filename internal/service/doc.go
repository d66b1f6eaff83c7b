// Package service provides the application-level operations behind the API:
// term management and review, and user accounts.
//
// Services orchestrate the domain rules and the store layer. Operations that
// read and then write the same rows run in a single transaction through
// store.RunInTransaction, using stores obtained from WithTx.
package service
