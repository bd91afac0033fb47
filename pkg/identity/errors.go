package identity

import "errors"

// ErrEmptySubject indicates an identity was built without a subject.
var ErrEmptySubject = errors.New("identity.empty_subject")
