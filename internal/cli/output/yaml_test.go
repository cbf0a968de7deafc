package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintYAML(t *testing.T) {
	data := struct {
		Key  string `yaml:"key"`
		Tier string `yaml:"tier"`
	}{
		Key:  "textures/hero.png",
		Tier: "critical",
	}

	var buf bytes.Buffer
	err := PrintYAML(&buf, data)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "key: textures/hero.png")
	assert.Contains(t, output, "tier: critical")
}

func TestPrintYAMLArray(t *testing.T) {
	data := []struct {
		Key string `yaml:"key"`
	}{
		{Key: "a.png"},
		{Key: "b.png"},
	}

	var buf bytes.Buffer
	err := PrintYAML(&buf, data)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "- key: a.png")
	assert.Contains(t, output, "- key: b.png")
}
