package service

import (
	"context"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// AuditService is the read side of the audit trail. Appends happen inside
// the write-path transactions; this only pages through what they left.
type AuditService struct {
	repos *repository.Repositories
}

func NewAuditService(repos *repository.Repositories) *AuditService {
	return &AuditService{repos: repos}
}

func (s *AuditService) List(ctx context.Context, p entity.Principal, page, pageSize int) ([]entity.AuditLog, int64, error) {
	if p.Role != entity.RoleAdmin {
		return nil, 0, Errorf(KindPermissionDenied, "only admins can read the audit trail")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.repos.Audit.List(ctx, page, pageSize)
}
