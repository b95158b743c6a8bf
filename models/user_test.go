package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordNeverMarshals(t *testing.T) {
	u := User{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "$2a$10$secret-hash",
	}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotContains(t, body, "password")
	assert.NotContains(t, string(data), "secret-hash")
}
