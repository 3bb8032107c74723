package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
)

var (
	alice = &model.User{ID: 1, Username: "alice"}
	bob   = &model.User{ID: 2, Username: "bob"}
	admin = &model.User{ID: 3, Username: "admin", IsAdmin: true}
)

func TestCanReadUserLogs(t *testing.T) {
	assert.NoError(t, CanReadUserLogs(alice, "alice"))
	assert.NoError(t, CanReadUserLogs(admin, "alice"))
	assert.ErrorIs(t, CanReadUserLogs(bob, "alice"), apperrors.ErrForbidden)
	assert.ErrorIs(t, CanReadUserLogs(nil, "alice"), apperrors.ErrForbidden)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(admin))
	assert.ErrorIs(t, RequireAdmin(alice), apperrors.ErrForbidden)
	assert.ErrorIs(t, RequireAdmin(nil), apperrors.ErrForbidden)
}

func TestCanDeleteTask(t *testing.T) {
	task := &model.QuickTask{ID: 9, Username: "alice", Task: "buy milk"}

	assert.NoError(t, CanDeleteTask(alice, task))
	assert.ErrorIs(t, CanDeleteTask(bob, task), apperrors.ErrForbidden)
	// admins get no override on quick tasks
	assert.ErrorIs(t, CanDeleteTask(admin, task), apperrors.ErrForbidden)
}

func TestDeviceLogOwnerScope(t *testing.T) {
	assert.Equal(t, "alice", deviceLogOwnerScope(alice))
	assert.Equal(t, "", deviceLogOwnerScope(admin))
}
