// Package testutils provides fixtures shared by tests across packages.
//
// Terms and users are built with functional options:
//
//	term := testutils.MustCreateTermForTest(t,
//	    testutils.WithTermOwner(userID),
//	    testutils.WithTermLevel(3),
//	    testutils.WithLevelChangedAt(now.Add(-13*24*time.Hour)),
//	)
//
// and persisted inside a test transaction with MustInsertUser and
// MustInsertTerm. Tokens for authenticated requests come from
// NewTestJWTService and AuthHeader.
package testutils
