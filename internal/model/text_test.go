package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Text
	}{
		{`"Maleficent"`, "Maleficent"},
		{`""`, ""},
		{`101`, "101"},
		{`-2.5`, "-2.5"},
		{`0`, ""},
		{`0.0`, ""},
		{`true`, "true"},
		{`false`, ""},
		{`null`, ""},
	}
	for _, tt := range tests {
		var got Text
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got), tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{`{}`, `["a"]`} {
		var got Text
		assert.Error(t, json.Unmarshal([]byte(in), &got), in)
	}
}

func TestCreateVillainRequest_CoercesScalars(t *testing.T) {
	var req CreateVillainRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":101,"movie":true,"slug":"x"}`), &req))
	require.NoError(t, req.Validate())
	assert.Equal(t, Villain{Name: "101", Movie: "true", Slug: "x"}, req.Villain())

	req = CreateVillainRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":0,"movie":"Hercules","slug":"hades"}`), &req))
	assert.Error(t, req.Validate())
}

func TestGetVillainRequest_DecodedSlug(t *testing.T) {
	assert.Equal(t, "a/b", (&GetVillainRequest{Slug: "a%2Fb"}).DecodedSlug())
	assert.Equal(t, "evil queen", (&GetVillainRequest{Slug: "evil%20queen"}).DecodedSlug())
	assert.Equal(t, "scar", (&GetVillainRequest{Slug: "scar"}).DecodedSlug())
	assert.Equal(t, "bad%zz", (&GetVillainRequest{Slug: "bad%zz"}).DecodedSlug())
}
