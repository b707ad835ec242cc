package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardValidation(t *testing.T) {
	type request struct {
		Board string `validate:"required,board"`
	}

	tests := []struct {
		name  string
		board string
		valid bool
	}{
		{"Empty board", ".........", true},
		{"Mid game", "XX.OO....", true},
		{"Too short", "XX.OO", false},
		{"Unknown symbol", "XX.OO...Z", false},
		{"O moved twice", "OO.......", false},
		{"Missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().Struct(request{Board: tt.board})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterGinBinding(t *testing.T) {
	assert.NotPanics(t, RegisterGinBinding)
}
