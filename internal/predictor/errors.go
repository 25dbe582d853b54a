package predictor

import (
	"errors"
	"net/http"
)

// Client-facing messages for rejected uploads.
const (
	MsgNotAnImage  = "File harus berupa gambar (jpg, png, dll)"
	MsgMissingFile = "File gambar wajib diunggah pada field 'file'"
	MsgTooLarge    = "Ukuran file melebihi batas maksimum"
)

// InputError is a client error; the HTTP layer maps it through StatusCode.
type InputError struct {
	Msg  string
	Code int
}

func (e *InputError) Error() string { return e.Msg }

// StatusCode implements httpapi.HTTPError.
func (e *InputError) StatusCode() int { return e.Code }

// BadInput returns a 400 InputError.
func BadInput(msg string) error { return &InputError{Msg: msg, Code: http.StatusBadRequest} }

// TooLarge returns a 413 InputError.
func TooLarge(msg string) error { return &InputError{Msg: msg, Code: http.StatusRequestEntityTooLarge} }

// IsInputError reports whether err is or wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
