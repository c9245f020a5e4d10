package domain

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestUpdateAppRequestValidation(t *testing.T) {
	v := validator.New()

	t.Run("omitted fields pass", func(t *testing.T) {
		assert.NoError(t, v.Struct(UpdateAppRequest{}))
	})

	t.Run("non-empty title passes", func(t *testing.T) {
		title := "Campus Maps"
		assert.NoError(t, v.Struct(UpdateAppRequest{Title: &title}))
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		title := ""
		assert.Error(t, v.Struct(UpdateAppRequest{Title: &title}))
	})
}
