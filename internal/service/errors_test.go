package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrMomentNotFound,
		ErrTaskNotFound,
		ErrImmutableField,
		ErrAssistantFailed,
		ErrAssistantDisabled,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestWorkflowError_Error(t *testing.T) {
	id := uuid.MustParse("5b0f4c36-0f8e-4a5c-9a39-2d7c0b4c8e11")

	tests := []struct {
		name     string
		command  string
		momentID uuid.UUID
		err      error
		expected string
	}{
		{
			name:     "with target moment",
			command:  "archive_moment",
			momentID: id,
			err:      domain.ErrNotActive,
			expected: fmt.Sprintf("archive_moment %s failed: %v", id, domain.ErrNotActive),
		},
		{
			name:     "without target moment",
			command:  "create_moment",
			err:      errors.New("title is required"),
			expected: "create_moment failed: title is required",
		},
		{
			name:     "with sentinel error",
			command:  "toggle_task",
			momentID: id,
			err:      ErrTaskNotFound,
			expected: fmt.Sprintf("toggle_task %s failed: task not found", id),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wErr := &WorkflowError{Command: tt.command, MomentID: tt.momentID, Err: tt.err}
			assert.Equal(t, tt.expected, wErr.Error())
		})
	}
}

func TestWorkflowError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("load: %w", ErrMomentNotFound)
	wErr := &WorkflowError{Command: "delete_moment", MomentID: uuid.New(), Err: cause}

	assert.Same(t, cause, wErr.Unwrap())
	assert.ErrorIs(t, wErr, ErrMomentNotFound)
	assert.NotErrorIs(t, wErr, ErrTaskNotFound)
}

func TestWorkflowError_ErrorsAs(t *testing.T) {
	id := uuid.New()
	var err error = fmt.Errorf("handler: %w", &WorkflowError{
		Command:  "postpone_moment",
		MomentID: id,
		Err:      domain.ErrNotPastDue,
	})

	var wErr *WorkflowError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, "postpone_moment", wErr.Command)
	assert.Equal(t, id, wErr.MomentID)
	assert.ErrorIs(t, err, domain.ErrNotPastDue)
}
