package format

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"agentscrape-go/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func samplePages() []models.Webpage {
	return []models.Webpage{
		{
			Identifier: "7d0f7c8e-6a55-4c8f-9d7e-0f5b1f2a3b4c",
			URL:        "https://example.com/docs",
			Status:     models.StatusDone,
			CreatedAt:  models.NewTimestamp(now.Add(-2 * time.Hour)),
			UpdatedAt:  models.NewTimestamp(now.Add(-time.Minute)),
		},
		{
			Identifier: "2",
			URL:        "https://example.com/blog",
			Status:     models.StatusPending,
			CreatedAt:  models.Timestamp{Raw: "yesterday"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Table, "table": Table, "JSON": JSON, " yaml ": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteAgentsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAgents(&buf, []models.Agent{{ID: "1", Title: "Docs"}, {ID: "2", Title: "Blog"}}, Table))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Docs")
	assert.Contains(t, out, "Total: 2 agent(s)")
}

func TestWriteAgentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAgents(&buf, nil, Table))
	assert.Equal(t, "No agents found.\n", buf.String())
}

func TestWriteAgentsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAgents(&buf, []models.Agent{{ID: "1", Title: "Docs"}}, YAML))

	var rows []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, []map[string]string{{"id": "1", "title": "Docs"}}, rows)
}

func TestWriteWebpagesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWebpages(&buf, samplePages(), 50, Table, now))

	out := buf.String()
	assert.Contains(t, out, "7d0f7c8e...")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "yesterday", "unparsed timestamps are shown raw")
	assert.Contains(t, out, "Total: 2 webpage(s), 50% done")
}

func TestWriteWebpagesJSONKeepsBackendFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWebpages(&buf, samplePages(), 50, JSON, now))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "done", decoded[0]["status"])
	assert.Equal(t, "yesterday", decoded[1]["created_at"])
}

func TestFormatProgress(t *testing.T) {
	line := FormatProgress(3, 4, 75)
	assert.Contains(t, line, " 75% (3/4 done)")
}

func TestShortenID(t *testing.T) {
	assert.Equal(t, "42", ShortenID("42"))
	assert.Equal(t, "abcdefgh...", ShortenID("abcdefghijklmnop"))
}
