package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetUnknownProvider(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("github")
	assert.ErrorContains(t, err, "unknown oauth provider")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&recordedStrategy{name: "github"})
	registry.Register(&recordedStrategy{name: "google"})

	s, err := registry.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "github", s.Name())

	assert.Equal(t, []string{"github", "google"}, registry.Names())
}

func TestRegistry_RegisterReplacesSameName(t *testing.T) {
	registry := NewRegistry()

	first := &recordedStrategy{name: "github"}
	second := &recordedStrategy{name: "github"}
	registry.Register(first)
	registry.Register(second)

	s, err := registry.Get("github")
	require.NoError(t, err)
	assert.Same(t, second, s)
	assert.Equal(t, []string{"github"}, registry.Names())
}
