package auth

import (
	"fmt"

	"github.com/gudangpro/inventory/internal/domain/errs"
)

type Role string

const (
	RoleAdminGudang Role = "ADMIN_GUDANG"
	RoleKaryawan    Role = "KARYAWAN"
	RoleKurir       Role = "KURIR"
)

// ParseRole validates a role string once, at the trust boundary. Everything
// downstream works with the closed Role type.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdminGudang, RoleKaryawan, RoleKurir:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", errs.ErrInvalidInput, s)
}

// Principal is the authenticated actor, supplied by the session layer.
// The core never authenticates; a zero Principal means "not logged in".
type Principal struct {
	ID       int64
	Username string
	Name     string
	Role     Role
}

func (p Principal) Present() bool { return p.ID != 0 }
