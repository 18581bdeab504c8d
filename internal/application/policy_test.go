package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campdir/campdir-api/internal/domain/entity"
)

func TestCanMutate(t *testing.T) {
	owner := &entity.User{ID: "u1", Role: entity.RolePublisher}
	other := &entity.User{ID: "u2", Role: entity.RolePublisher}
	admin := &entity.User{ID: "u3", Role: entity.RoleAdmin}

	assert.True(t, CanMutate(owner, "u1"))
	assert.False(t, CanMutate(other, "u1"))
	assert.True(t, CanMutate(admin, "u1"), "admin bypasses ownership")
	assert.False(t, CanMutate(nil, "u1"))
}
