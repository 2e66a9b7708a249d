package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t, time.Hour)

	agents, err := c.ListAgents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, agents)
	assert.Empty(t, agents)

	require.NoError(t, c.CreateAgent(ctx, "  Research bot  "))

	agents, err = c.ListAgents(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Research bot", agents[0].Title)

	require.NoError(t, c.DeleteAgent(ctx, agents[0].ID))

	agents, err = c.ListAgents(ctx)
	require.NoError(t, err)
	assert.Empty(t, agents)
}

func TestCreateAgentBlankTitleSendsNoRequest(t *testing.T) {
	stub := newStub(t, http.StatusOK, `{"success":true}`)

	for _, title := range []string{"", "   ", "\t\n"} {
		err := stub.client().CreateAgent(context.Background(), title)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
		assert.Equal(t, "Please enter an agent title", UserMessage(err))
	}

	assert.Zero(t, stub.hits.Load())
}

func TestCreateAgentSendsTrimmedTitle(t *testing.T) {
	stub := newStub(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, stub.client().CreateAgent(context.Background(), "  Crawler  "))
	assert.JSONEq(t, `{"title":"Crawler"}`, string(stub.lastBody.Load().([]byte)))
}

func TestAgentIDsMayBeNumbers(t *testing.T) {
	stub := newStub(t, http.StatusOK, `{"success":true,"data":[{"id":7,"title":"Seven"}]}`)

	agents, err := stub.client().ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "7", agents[0].ID.String())
}

func TestDeleteUnknownAgentIsBackendError(t *testing.T) {
	c := newBackend(t, time.Hour)

	err := c.DeleteAgent(context.Background(), "missing")
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindBackend, ce.Kind)
	assert.Equal(t, http.StatusNotFound, ce.StatusCode)
}

func TestDeleteEscapesID(t *testing.T) {
	stub := newStub(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, stub.client().DeleteAgent(context.Background(), "a/b"))
	assert.Equal(t, "/api/agents/a%2Fb", stub.request().URL.EscapedPath())
}
