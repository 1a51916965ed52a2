package payload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "config": {"orientation": "auto", "dividers": true, "style_orders": "#ff0000"},
  "data": [
    {"name": "orders", "label": "Orders", "formatted_value": "1,204", "comparison": 5,
     "links": [{"label": "Show All", "url": "/explore/orders"}]},
    {"name": "uptime", "label": "Uptime", "value_formatted": "0:00:10", "comparison": null},
    {"name": "revenue", "label": "Revenue", "formatted_value": "$9", "html": "<b>$9</b>", "comparison": "0"},
    {"name": "churn", "label": "Churn", "formatted_value": "2%",
     "link": [{"label": "Drill", "url": "/x"}]}
  ]
}`

func TestDecodeComparisonStates(t *testing.T) {
	p, err := Decode([]byte(samplePayload))
	require.NoError(t, err)
	require.Len(t, p.Data, 4)

	assert.Equal(t, Number(5), p.Data[0].Comparison)
	assert.Equal(t, ComparisonNull, p.Data[1].Comparison.State)
	assert.Equal(t, Number(0), p.Data[2].Comparison)
	assert.Equal(t, ComparisonAbsent, p.Data[3].Comparison.State)
	assert.NoError(t, p.Problems)
}

func TestDecodeAliases(t *testing.T) {
	p, err := Decode([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, "0:00:10", p.Data[1].FormattedValue)
	require.Len(t, p.Data[3].Links, 1)
	assert.Equal(t, "/x", p.Data[3].Links[0].URL)
	require.Len(t, p.Data[0].Links, 1)
	assert.Equal(t, "Show All", p.Data[0].Links[0].Label)
	assert.Equal(t, "<b>$9</b>", p.Data[2].HTML)
	assert.Equal(t, true, p.Config["dividers"])
}

func TestDecodeDigest(t *testing.T) {
	a, err := Decode([]byte(samplePayload))
	require.NoError(t, err)
	b, err := Decode([]byte(samplePayload))
	require.NoError(t, err)
	c, err := Decode([]byte(`{"data": []}`))
	require.NoError(t, err)

	assert.Equal(t, a.Digest, b.Digest)
	assert.NotEqual(t, a.Digest, c.Digest)
	assert.NotNil(t, c.Config)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"data": [`))
	assert.Error(t, err)
}

func TestValidateProblemsDoNotFail(t *testing.T) {
	raw := `{"data": [
	  {"name": "a", "formatted_value": "1"},
	  {"name": "", "formatted_value": "2"},
	  {"name": "a", "formatted_value": "3"},
	  {"name": "b", "formatted_value": "4", "comparison": "lots"}
	]}`
	p, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, p.Data, 4)
	require.Error(t, p.Problems)

	msg := p.Problems.Error()
	assert.Contains(t, msg, "data[1]: missing name")
	assert.Contains(t, msg, `duplicate name "a"`)
	assert.Contains(t, msg, "not numeric")
	assert.Equal(t, ComparisonNull, p.Data[3].Comparison.State)
}

func TestComparisonMarshal(t *testing.T) {
	b, err := Number(2.5).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(b))

	b, err = Comparison{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePayload), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Data, 4)
	assert.False(t, p.BuiltAt.IsZero())

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
