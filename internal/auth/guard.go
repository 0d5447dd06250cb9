package auth

import "blog-api/internal/domain"

// CanModify reports whether the user may mutate a resource owned by ownerID.
// Allowed iff the user is the owner or carries the admin role. A zero ownerID
// marks an orphaned resource and is always denied.
func CanModify(user *domain.User, ownerID int64) bool {
	if user == nil || ownerID == 0 {
		return false
	}
	return user.ID == ownerID || user.IsAdmin()
}
