package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owservable/folders"
	"github.com/owservable/folders/config"
)

func parseJobs(t *testing.T, content string) ([]*Definition, error) {
	t.Helper()
	raw, err := config.ParseFromString(content)
	require.NoError(t, err)

	return ParseDefinitions(raw, []string{"local", "archive"})
}

func Test_ParseDefinitions(t *testing.T) {
	assertion := assert.New(t)

	definitions, err := parseJobs(t, `
specials:
  source: local
  root: projects
  name: special
  operation: collect
  schedule: "*/15 * * * *"
all-files:
  source: archive
  schedule: "0 3 * * *"
`)

	require.NoError(t, err)
	require.Len(t, definitions, 2)

	all := definitions[0]
	assertion.Equal("all-files", all.Name)
	assertion.Equal("archive", all.Source)
	assertion.Equal("", all.Root)
	assertion.Equal(folders.OperationFiles, all.Operation)
	assertion.Equal("0 3 * * *", all.Expression)
	assertion.NotNil(all.Schedule)

	specials := definitions[1]
	assertion.Equal("specials", specials.Name)
	assertion.Equal("local", specials.Source)
	assertion.Equal("projects", specials.Root)
	assertion.Equal("special", specials.FolderName)
	assertion.Equal(folders.OperationCollect, specials.Operation)
}

func Test_ParseDefinitions_defaults(t *testing.T) {
	assertion := assert.New(t)

	definitions, err := parseJobs(t, `
defaults:
  source: local
  operation: find
  schedule: "@hourly"
first:
  name: special
second:
  name: other
  source: archive
  schedule: "0 0 * * *"
`)

	require.NoError(t, err)
	require.Len(t, definitions, 2)

	assertion.Equal("local", definitions[0].Source)
	assertion.Equal(folders.OperationFind, definitions[0].Operation)
	assertion.Equal("@hourly", definitions[0].Expression)

	assertion.Equal("archive", definitions[1].Source)
	assertion.Equal("0 0 * * *", definitions[1].Expression)
}

func Test_ParseDefinitions_empty(t *testing.T) {
	definitions, err := ParseDefinitions(nil, nil)

	assert.NoError(t, err)
	assert.Empty(t, definitions)
}

func Test_ParseDefinitions_errors(t *testing.T) {
	cases := map[string]string{
		"unknown source":     "job: {source: nowhere, schedule: '@daily'}",
		"missing source":     "job: {schedule: '@daily'}",
		"unknown operation":  "job: {source: local, operation: delete, schedule: '@daily'}",
		"missing name":       "job: {source: local, operation: find, schedule: '@daily'}",
		"missing schedule":   "job: {source: local}",
		"invalid schedule":   "job: {source: local, schedule: 'every now and then'}",
		"illegal job name":   "'my job': {source: local, schedule: '@daily'}",
		"no entries for job": "job:",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseJobs(t, content)

			assert.Error(t, err)
		})
	}
}

func Test_Definition_MarshalJSON(t *testing.T) {
	data, err := (&Definition{Name: "specials"}).MarshalJSON()

	assert.NoError(t, err)
	assert.JSONEq(t, `"specials"`, string(data))
}
