package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputErrorNamesTheProblem(t *testing.T) {
	cause := errors.New("please enter at least one website URL")
	err := InvalidInputError(OpStartScrape, cause)

	assert.True(t, IsKind(err, KindValidation))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Please enter at least one website URL", UserMessage(err))
}

func TestUserMessageIsGenericForBackendFailures(t *testing.T) {
	err := newBackendError(OpDeleteAgent, 404, "agent not found")
	assert.Equal(t, "Failed to delete agent.", UserMessage(err))
}
