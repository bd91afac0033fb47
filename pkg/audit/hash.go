package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Checksum fingerprints the identifying fields of e so edited records can
// be detected.
func Checksum(e Event) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%d",
		e.ID,
		e.Action,
		e.Result,
		e.Subject,
		e.SessionID,
		e.IP,
		e.Error,
		e.CreatedAt.UnixNano(),
	)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether e still matches its checksum.
func Verify(e Event) bool {
	return e.Checksum != "" && e.Checksum == Checksum(e)
}
