package journal

import (
	"time"

	"github.com/google/uuid"
)

// Project is a user-owned grouping of trades. The Trade -> Project -> User
// chain authorizes every mutating operation.
type Project struct {
	ID        int64
	UserUUID  uuid.UUID
	Name      string
	CreatedAt time.Time
}
