package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-tracker/internal/domain/user"
)

// requireAdmin gates every mutating operation.
func requireAdmin(ctx context.Context) error {
	p, ok := user.PrincipalFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: principal is required", ErrUnauthorized)
	}
	if !p.IsAdmin() {
		return fmt.Errorf("%w: admin role required, subject=%s", ErrForbidden, p.Subject)
	}
	return nil
}
