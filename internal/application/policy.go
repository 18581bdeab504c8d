package application

import "github.com/campdir/campdir-api/internal/domain/entity"

// CanMutate is the single ownership predicate behind every mutating
// endpoint: the caller must own the resource or be an admin.
func CanMutate(caller *entity.User, ownerID string) bool {
	if caller == nil {
		return false
	}
	return caller.IsAdmin() || caller.ID == ownerID
}
