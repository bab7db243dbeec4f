package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("name", "John"))
	assert.NotNil(t, Required("name", ""))
	assert.NotNil(t, Required("name", "   "))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("email", "johndoe@x.com"))
	assert.NotNil(t, Email("email", ""))
	assert.NotNil(t, Email("email", "not-an-email"))
	assert.NotNil(t, Email("email", "john@"))
}

func TestPassword(t *testing.T) {
	assert.Nil(t, Password("password", "1234567"))
	assert.NotNil(t, Password("password", "123456"), "too short")
	assert.NotNil(t, Password("password", "password123"))
	assert.NotNil(t, Password("password", "myPASSword1"), "substring check is case-insensitive")
}

func TestMinInt(t *testing.T) {
	assert.Nil(t, MinInt("age", 0, 0))
	assert.NotNil(t, MinInt("age", -1, 0))
}

func TestErrsError(t *testing.T) {
	e := Errs{{Field: "a", Msg: "x"}, {Field: "b", Msg: "y"}}
	require.Equal(t, "a: x; b: y", e.Error())
}
