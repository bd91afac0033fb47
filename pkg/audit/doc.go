// Package audit records security-relevant actions such as sign-in and
// sign-out.
//
// A Logger stamps every event with an ID, the request ID, the client
// address and a checksum, then hands it to a Storage: LogStorage for the
// structured log, MongoStorage for a collection, MemoryStorage for tests.
//
//	auditLog := audit.NewLogger(audit.NewLogStorage(log),
//		audit.WithSubjectExtractor(subjectFromView),
//	)
//	_ = auditLog.Log(ctx, "auth.signin", audit.WithSubject(sub))
package audit
