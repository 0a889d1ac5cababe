package usecase

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// newDocNumber builds a document number such as SUB-01J... or INV-01J...
// ULIDs sort by creation time, which keeps the numbers monotonic-ish the way
// the old timestamp-suffix scheme was, without its collision window.
func newDocNumber(prefix string) string {
	return prefix + "-" + ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
