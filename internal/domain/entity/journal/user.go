package journal

import (
	"github.com/google/uuid"
)

// User owns projects. Only the identity fields matter here; credential
// handling lives outside this service.
type User struct {
	UUID     uuid.UUID
	Username string
}
