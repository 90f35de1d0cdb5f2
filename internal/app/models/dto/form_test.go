package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var form struct {
		Title   FormValue `json:"title"`
		Credits FormValue `json:"credits"`
		Missing FormValue `json:"missing"`
		IDs     FormValue `json:"studentIds"`
	}
	body := `{"title":"  Algebra ","credits":3,"missing":null,"studentIds":[1, "2"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &form))

	assert.Equal(t, "Algebra", form.Title.String())
	assert.Equal(t, "3", form.Credits.String())
	assert.True(t, form.Missing.Empty())
	assert.Nil(t, form.Missing.Ptr())
	assert.Equal(t, `[1, "2"]`, form.IDs.String())
}
