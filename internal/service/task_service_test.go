package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "actlog/internal/errors"
	"actlog/internal/model"
)

func TestQuickTaskService_Add(t *testing.T) {
	mockRepo := new(MockQuickTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.QuickTask) bool {
		return task.Username == "alice" && task.Task == "buy milk"
	})).Return(nil)
	svc := NewQuickTaskService(mockRepo)

	task, err := svc.Add(context.Background(), alice, "  buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Task)

	_, err = svc.Add(context.Background(), alice, "")
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)

	mockRepo.AssertExpectations(t)
}

func TestQuickTaskService_List(t *testing.T) {
	mockRepo := new(MockQuickTaskRepository)
	mockRepo.On("ListByUsername", mock.Anything, "alice").Return([]model.QuickTask{{ID: 1, Username: "alice", Task: "a"}}, nil)

	tasks, err := NewQuickTaskService(mockRepo).List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	mockRepo.AssertExpectations(t)
}

func TestQuickTaskService_Delete(t *testing.T) {
	owned := &model.QuickTask{ID: 9, Username: "alice", Task: "buy milk"}

	tests := []struct {
		name          string
		requester     *model.User
		setupMock     func(*MockQuickTaskRepository)
		expectedError error
	}{
		{
			name:      "owner deletes",
			requester: alice,
			setupMock: func(m *MockQuickTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)
				m.On("Delete", mock.Anything, uint(9)).Return(nil)
			},
		},
		{
			name:      "other user forbidden",
			requester: bob,
			setupMock: func(m *MockQuickTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "admin forbidden",
			requester: admin,
			setupMock: func(m *MockQuickTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:      "missing task",
			requester: alice,
			setupMock: func(m *MockQuickTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
		{
			name:      "deleted concurrently",
			requester: alice,
			setupMock: func(m *MockQuickTaskRepository) {
				m.On("FindByID", mock.Anything, uint(9)).Return(owned, nil)
				m.On("Delete", mock.Anything, uint(9)).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockQuickTaskRepository)
			tt.setupMock(mockRepo)

			err := NewQuickTaskService(mockRepo).Delete(context.Background(), tt.requester, 9)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			// expectations only list Delete when the policy allowed it
			mockRepo.AssertExpectations(t)
		})
	}
}
