package users

import (
	"time"

	"github.com/gudangpro/inventory/internal/domain/auth"
)

// User is the read model of the external account store. Credentials and
// session issuance live outside this service; the core only needs identity
// and role for authorization and for rendering who created a ledger entry.
type User struct {
	ID        int64
	Username  string
	Name      string
	Role      auth.Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
