package service

import "errors"

// Input rejections. They are logged only; Resolve reports them as NotFound.
var (
	ErrEmptyURL       = errors.New("empty URL")
	ErrURLTooLong     = errors.New("URL too long")
	ErrHostNotAllowed = errors.New("host is not a map link host")
)
