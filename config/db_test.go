package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCollectionRequiresConnection(t *testing.T) {
	orig := database
	database = nil
	t.Cleanup(func() { database = orig })

	// A failed startup connection must surface as a clear panic at the first
	// collection open, not a nil dereference.
	assert.Panics(t, func() { GetCollection("properties") })
}
