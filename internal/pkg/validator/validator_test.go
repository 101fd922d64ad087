package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `validate:"required,email"`
	Mode  string `validate:"oneof=a b"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "a@b.com", Mode: "a"}))

	errs := Validate(sample{Email: "nope", Mode: "c"})
	assert.Equal(t, "email", errs["sample.Email"])
	assert.Equal(t, "oneof", errs["sample.Mode"])
}

func TestVar(t *testing.T) {
	assert.True(t, Var("+14155550100", "e164"))
	assert.False(t, Var("0612345678", "e164"))
	assert.False(t, Var("", "required,email"))
}
