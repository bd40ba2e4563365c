package service

import (
	"github.com/fortresslabs/garrison/internal/entity"
)

// ReadScope resolves the effective base filter for read contexts. Empty
// means "all bases". Admins and logistics officers may request any base or
// none; base commanders are always pinned to their own base and the
// requested base is ignored.
func ReadScope(p entity.Principal, requestedBaseID string) string {
	switch p.Role {
	case entity.RoleAdmin, entity.RoleLogisticsOfficer:
		return requestedBaseID
	default:
		return p.BaseID
	}
}

// MetricsScope resolves the base filter for balance reconstruction. Unlike
// plain reads, every non-admin is pinned to their own base here; only an
// admin may widen the window to another base or to all bases.
func MetricsScope(p entity.Principal, requestedBaseID string) string {
	if p.Role == entity.RoleAdmin {
		return requestedBaseID
	}
	return p.BaseID
}
