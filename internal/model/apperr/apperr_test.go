package apperr

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_OnHTTPStatus_ShouldMapTaxonomy(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("User not found with id %d", 1)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NoData("No User Present")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidRequest("Year cannot be negative")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyExists("User already exists with email %s", "a@x.com")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func Test_OnHTTPStatus_ShouldSeeThroughWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("Expense not found with id %d", 7), "get expense")

	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.EqualError(t, err, "get expense: Expense not found with id 7")
}
