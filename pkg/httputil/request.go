package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ContextKey string

// ContextURL is the gin context key holding the external base URL of the API.
const ContextURL ContextKey = "tripbudget.url"

var (
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty   = errors.New("the request body must not be empty")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)

// URL returns the external base URL of the API without a trailing slash.
func URL(c *gin.Context) string {
	return c.GetString(string(ContextURL))
}

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return fmt.Errorf("%w: %s must be of type %s", ErrInvalidBody, jsonUnmarshalTypeError.Field, jsonUnmarshalTypeError.Type)
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindQuery binds the query string to the struct passed in.
func BindQuery(c *gin.Context, data any) error {
	if err := c.ShouldBindQuery(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQueryString, err.Error())
	}

	return nil
}
