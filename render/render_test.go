package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Azhovan/hydrate"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func jiraParams() *hydrate.Params {
	env := hydrate.MapEnv{
		"JIRA_URL":         "https://jira.example.com",
		"JIRA_DB_HOST":     "db.internal",
		"JIRA_DB_PASSWORD": "p@ss: word",
	}
	return hydrate.Hydrate(env, []string{"JIRA_URL", "JIRA_DB_HOST", "JIRA_DB_PASSWORD", "JIRA_HOME"})
}

func TestWrite_Properties(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, jiraParams(), Properties)
	require.NoError(t, err)

	want := "jira.url=https://jira.example.com\n" +
		"jira.db.host=db.internal\n" +
		"jira.db.password=p@ss: word\n" +
		"jira.home=\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_PropertiesWithSources(t *testing.T) {
	params := hydrate.Hydrate(hydrate.MapEnv{"JIRA_URL": "u"}, []string{"JIRA_URL", "JIRA_HOME"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, params, Properties, WithSources()))

	want := "# from JIRA_URL\njira.url=u\n# from JIRA_HOME (unset)\njira.home=\n"
	assert.Equal(t, want, buf.String())
}

func TestEscapeProperty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   bool
		want  string
	}{
		{name: "plain value", input: "abc", want: "abc"},
		{name: "backslash", input: `C:\jira`, want: `C:\\jira`},
		{name: "newline and tab", input: "a\nb\tc", want: `a\nb\tc`},
		{name: "leading space in value", input: " x y", want: `\ x y`},
		{name: "separators kept in value", input: "a=b:c", want: "a=b:c"},
		{name: "separators escaped in key", input: "a=b:c", key: true, want: `a\=b\:c`},
		{name: "comment markers escaped in key", input: "#x!", key: true, want: `\#x\!`},
		{name: "space escaped in key", input: "a b", key: true, want: `a\ b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeProperty(tt.input, tt.key))
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, jiraParams(), JSON))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "\n  \"jira.url\": ")

	// Key order follows the input names.
	assert.Less(t, strings.Index(out, "jira.url"), strings.Index(out, "jira.db.host"))
	assert.Less(t, strings.Index(out, "jira.db.password"), strings.Index(out, "jira.home"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, jiraParams().Map(), decoded)
}

func TestWrite_JSONCompact(t *testing.T) {
	params := hydrate.Hydrate(hydrate.MapEnv{"A_B": "x\"y"}, []string{"A_B", "C"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, params, JSON, WithIndent("")))

	assert.Equal(t, `{"a.b":"x\"y","c":""}`+"\n", buf.String())
}

func TestWrite_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, hydrate.Hydrate(nil, nil), JSON))

	assert.Equal(t, "{}\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, jiraParams(), YAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "jira.url: "))
	assert.Less(t, strings.Index(out, "jira.db.host"), strings.Index(out, "jira.home"))

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, jiraParams().Map(), decoded)
}

func TestWrite_YAMLKeepsStringsAsStrings(t *testing.T) {
	params := hydrate.Hydrate(hydrate.MapEnv{"PORT": "8080", "DEBUG": "true", "EMPTY": ""}, []string{"PORT", "DEBUG", "EMPTY"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, params, YAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "8080", decoded["port"])
	assert.Equal(t, "true", decoded["debug"])
	assert.Equal(t, "", decoded["empty"])
}

func TestWrite_YAMLWithSources(t *testing.T) {
	params := hydrate.Hydrate(hydrate.MapEnv{}, []string{"JIRA_HOME"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, params, YAML, WithSources()))

	assert.Contains(t, buf.String(), "# from JIRA_HOME (unset)")
}

func TestWrite_YAMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, hydrate.Hydrate(nil, nil), YAML))

	assert.Equal(t, "{}\n", buf.String())
}

func TestWrite_TOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, jiraParams(), TOML))

	out := buf.String()
	assert.Less(t, strings.Index(out, "jira.url"), strings.Index(out, "jira.home"))

	// Dotted keys stay flat.
	var decoded map[string]any
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "https://jira.example.com", decoded["jira.url"])
	assert.Equal(t, "", decoded["jira.home"])
	assert.NotContains(t, decoded, "jira")
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, jiraParams(), Format("xml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Empty(t, buf.String())
}

func TestWrite_NilParams(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, JSON))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_WriterError(t *testing.T) {
	err := Write(failingWriter{}, jiraParams(), Properties)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"properties": Properties,
		"JSON":       JSON,
		"yaml":       YAML,
		"yml":        YAML,
		" toml ":     TOML,
	}
	for input, want := range tests {
		got, err := ParseFormat(input)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}
