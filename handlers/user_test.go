package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{
			name:   "JSON array string",
			values: []string{`["Go","MongoDB"]`},
			want:   []string{"Go", "MongoDB"},
		},
		{
			name:   "unparseable string becomes a single entry",
			values: []string{"Negotiation"},
			want:   []string{"Negotiation"},
		},
		{
			name:   "repeated form values are kept as-is",
			values: []string{"Go", "Redis"},
			want:   []string{"Go", "Redis"},
		},
		{
			name:   "no values",
			values: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSkills(tt.values))
		})
	}
}

func TestBuildUserSearchQuery(t *testing.T) {
	t.Run("always filters to active users", func(t *testing.T) {
		query := buildUserSearchQuery("", "", "")
		assert.Equal(t, bson.M{"isActive": true}, query)
	})

	t.Run("q matches name, email, bio and skills", func(t *testing.T) {
		query := buildUserSearchQuery("smith", "", "")
		regex := bson.M{"$regex": "smith", "$options": "i"}
		assert.Equal(t, bson.M{
			"isActive": true,
			"$or": []bson.M{
				{"name": regex},
				{"email": regex},
				{"bio": regex},
				{"skills": bson.M{"$in": []primitive.Regex{{Pattern: "smith", Options: "i"}}}},
			},
		}, query)
	})

	t.Run("role and department filter exactly", func(t *testing.T) {
		query := buildUserSearchQuery("", "Manager", "IT")
		assert.Equal(t, "Manager", query["role"])
		assert.Equal(t, "IT", query["department"])
	})

	t.Run("all disables the dimension", func(t *testing.T) {
		query := buildUserSearchQuery("", "all", "all")
		assert.NotContains(t, query, "role")
		assert.NotContains(t, query, "department")
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", normalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", normalizeEmail(""))
}

func TestStoredUserPaths(t *testing.T) {
	got := storedUserPaths([]string{"user-1-a.png"})
	assert.Equal(t, []string{"/uploads/users/user-1-a.png"}, got)
}
