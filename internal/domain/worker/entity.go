package worker

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to workers created without an explicit
// group/category label.
const DefaultCategory = "AGENT"

type Worker struct {
	ID           string
	Code         *string
	LastName     string
	FirstName    string
	Category     string
	SignatureURL *string
	CreatedAt    time.Time
}

// GenerateCode produces a fresh worker code for identities created without
// one ("AG-" plus the first eight hex digits of a random UUID). Uniqueness
// is ultimately guaranteed by the unique index on workers.code.
func GenerateCode() string {
	id := uuid.NewString()
	return "AG-" + strings.ReplaceAll(id, "-", "")[:8]
}
