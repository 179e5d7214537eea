package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArray_Value(t *testing.T) {
	empty := JSONBStringArray{}
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	arr := JSONBStringArray{"salt", "pepper"}
	v, err = arr.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["salt","pepper"]`, string(v.([]byte)))
}

func TestJSONBStringArray_Scan(t *testing.T) {
	var arr JSONBStringArray
	require.NoError(t, arr.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, JSONBStringArray{"a", "b"}, arr)

	require.NoError(t, arr.Scan(`["c"]`))
	assert.Equal(t, JSONBStringArray{"c"}, arr)

	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)
}

func TestBeforeCreate_AssignsID(t *testing.T) {
	r := &Recipe{}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, r.ID)

	// An explicitly assigned id is preserved.
	fixed := uuid.New()
	r = &Recipe{ID: fixed}
	require.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, fixed, r.ID)

	u := &User{}
	require.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)
}
