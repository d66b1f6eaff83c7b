// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Each test runs inside its own transaction, which is rolled back when the
// test finishes, so tests can run in parallel against the same schema
// without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        terms := postgres.NewPostgresTermStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The database URL is read from DATABASE_URL, falling back to
// TERMDECK_TEST_DB_URL. Tests are skipped when neither is set.
package testdb
