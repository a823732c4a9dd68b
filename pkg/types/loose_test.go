package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseInt(t *testing.T) {
	var v struct {
		A LooseInt `json:"a"`
		B LooseInt `json:"b"`
		C LooseInt `json:"c"`
		D LooseInt `json:"d"`
		E LooseInt `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":5,"b":"6","c":null,"d":"","e":7.0}`), &v))
	assert.Equal(t, LooseInt(5), v.A)
	assert.Equal(t, LooseInt(6), v.B)
	assert.Equal(t, LooseInt(0), v.C)
	assert.Equal(t, LooseInt(0), v.D)
	assert.Equal(t, 7, v.E.Int())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"seven"}`), &v))
}

func TestLooseString(t *testing.T) {
	var v struct {
		Lat LooseString `json:"lat"`
		Lng LooseString `json:"lng"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"lat":41.31,"lng":"69.24"}`), &v))
	assert.Equal(t, LooseString("41.31"), v.Lat)
	assert.Equal(t, LooseString("69.24"), v.Lng)
}
