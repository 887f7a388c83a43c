package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextProjectStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		current string
		event   ProjectEvent
		next    string
	}{
		{ProjectStatusOpen, EventAward, ProjectStatusInProgress},
		{ProjectStatusOpen, EventClose, ProjectStatusCancelled},
		{ProjectStatusInProgress, EventSubmitDeliverable, ProjectStatusPendingReview},
		{ProjectStatusInProgress, EventClose, ProjectStatusCancelled},
		{ProjectStatusPendingReview, EventConfirmCompletion, ProjectStatusCompleted},
		{ProjectStatusPendingReview, EventClose, ProjectStatusCancelled},
	}

	for _, tc := range cases {
		next, err := NextProjectStatus(tc.current, tc.event)
		assert.NoError(t, err, "%s + %s", tc.current, tc.event)
		assert.Equal(t, tc.next, next)
	}
}

func TestNextProjectStatus_ForbiddenTransitions(t *testing.T) {
	cases := []struct {
		current string
		event   ProjectEvent
	}{
		{ProjectStatusOpen, EventSubmitDeliverable},
		{ProjectStatusOpen, EventConfirmCompletion},
		{ProjectStatusInProgress, EventAward},
		{ProjectStatusInProgress, EventConfirmCompletion},
		{ProjectStatusPendingReview, EventAward},
		{ProjectStatusPendingReview, EventSubmitDeliverable},
		{ProjectStatusCompleted, EventAward},
		{ProjectStatusCompleted, EventClose},
		{ProjectStatusCancelled, EventAward},
		{ProjectStatusCancelled, EventClose},
	}

	for _, tc := range cases {
		_, err := NextProjectStatus(tc.current, tc.event)
		assert.Error(t, err, "%s + %s", tc.current, tc.event)
	}
}

func TestNextProjectStatus_UnknownStatus(t *testing.T) {
	_, err := NextProjectStatus("draft", EventAward)
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(ProjectStatusOpen, EventAward))
	assert.False(t, CanTransition(ProjectStatusCompleted, EventClose))
}
