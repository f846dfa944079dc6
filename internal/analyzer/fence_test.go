package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  \n```JSON\n{\"a\":1}\n``` \n"))
}

func TestStripCodeFence_NoFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
	assert.Equal(t, "plain text", StripCodeFence("  plain text  "))
	assert.Equal(t, "", StripCodeFence(""))
}

func TestStripCodeFence_UnterminatedFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}"))
}

func TestDataURL(t *testing.T) {
	url := DataURL("image/png", []byte{0x89, 0x50})
	assert.Equal(t, "data:image/png;base64,iVA=", url)
}

func TestCheckContentType(t *testing.T) {
	assert.NoError(t, CheckContentType("image/jpeg"))
	assert.NoError(t, CheckContentType("image/png"))
	assert.NoError(t, CheckContentType("image/webp"))
	assert.Error(t, CheckContentType("application/pdf"))
	assert.Error(t, CheckContentType(""))
}
