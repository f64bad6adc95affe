package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"magpie/types"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name string   `json:"name" validate:"required" msg:"A name is required"`
	Bots []string `json:"bots" validate:"dive,numeric" amsg:"Bots must be numeric snowflakes"`
}

func TestCompileValidationErrors(t *testing.T) {
	compiled := CompileValidationErrors(testPayload{})

	assert.Equal(t, "A name is required", compiled["Name"])
	assert.Equal(t, "Bots must be numeric snowflakes", compiled["Bots$arr"])
}

func TestValidatorErrorResponse(t *testing.T) {
	v := validator.New()

	err := v.Struct(testPayload{Bots: []string{"abc"}})
	require.Error(t, err)

	resp := ValidatorErrorResponse(CompileValidationErrors(testPayload{}), err.(validator.ValidationErrors))

	assert.Equal(t, http.StatusBadRequest, resp.Status)

	apiErr, ok := resp.Json.(types.ApiError)
	require.True(t, ok)
	assert.False(t, apiErr.Done)
	assert.Contains(t, apiErr.Reason, "A name is required")
	assert.Equal(t, "Name", apiErr.Context)
}

func TestDefaultResponse(t *testing.T) {
	resp := DefaultResponse(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, resp.Data, `"done":false`)

	resp = DefaultResponse(http.StatusForbidden)

	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Contains(t, resp.Data, "not allowed")
}

func TestMarshalReq(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"test"}`))

	var dst testPayload

	_, ok := MarshalReq(RouteData{}, req, &dst)

	require.True(t, ok)
	assert.Equal(t, "test", dst.Name)

	req = httptest.NewRequest("POST", "/", bytes.NewBufferString(""))

	resp, ok := MarshalReq(RouteData{}, req, &dst)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	req = httptest.NewRequest("POST", "/", bytes.NewBufferString("{bad json"))

	resp, ok = MarshalReq(RouteData{}, req, &dst)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "GET", GET.String())
	assert.Equal(t, "DELETE", DELETE.String())
}
