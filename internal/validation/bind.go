package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidBody means the body was not JSON of the expected shape.
	ErrInvalidBody = errors.New("invalid request body")
	// ErrBodyTooLarge means the body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrValidation wraps validator failures.
	ErrValidation = errors.New("validation failed")
)

// ReadBody returns the raw request body. An empty body reads as "{}".
func ReadBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return []byte("{}"), nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}"), nil
	}
	return body, nil
}

// BindAndValidate decodes body into out and runs validation. It does not
// write a response; callers map the returned error to their own error shape.
func BindAndValidate(body []byte, out interface{}, v *validatorv10.Validate) error {
	if err := binding.JSON.BindBody(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := v.Struct(out); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// FieldErrors flattens validator errors for logging.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Tag()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
