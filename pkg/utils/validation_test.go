package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Margherita", true},
		{"Pizza_Ñ-1.2", true},
		{"", false},
		{"Margherita ", false},
		{"a#b", false},
		{"x> . ?s ?p ?o", false},
		{"}", false},
		{"tab\there", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalName(tt.in))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Name string `json:"name" validate:"required,max=8,localname"`
	}

	assert.NoError(t, ValidateStruct(request{Name: "Rosa"}))

	err := ValidateStruct(request{})
	assert.EqualError(t, err, "name is required")

	err = ValidateStruct(request{Name: strings.Repeat("a", 9)})
	assert.EqualError(t, err, "name must be at most 8 characters")

	err = ValidateStruct(request{Name: "a<b"})
	assert.EqualError(t, err, "name must be an ontology local name")
}
