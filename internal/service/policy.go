package service

import (
	apperrors "actlog/internal/errors"
	"actlog/internal/model"
)

// CanReadUserLogs allows a user to read their own logs; admins may read anyone's.
func CanReadUserLogs(identity *model.User, owner string) error {
	if identity == nil {
		return apperrors.ErrForbidden
	}
	if identity.Username == owner || identity.IsAdmin {
		return nil
	}
	return apperrors.ErrForbidden
}

// RequireAdmin allows only admins.
func RequireAdmin(identity *model.User) error {
	if identity == nil || !identity.IsAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// CanDeleteTask allows only the task's owner. Admin status does not override.
func CanDeleteTask(identity *model.User, task *model.QuickTask) error {
	if identity == nil || task == nil || identity.Username != task.Username {
		return apperrors.ErrForbidden
	}
	return nil
}

// deviceLogOwnerScope returns the owner filter for device log reads: empty for
// admins (every owner), the caller's username otherwise.
func deviceLogOwnerScope(identity *model.User) string {
	if identity.IsAdmin {
		return ""
	}
	return identity.Username
}
