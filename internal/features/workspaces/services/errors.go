package workspaces_services

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrUpload     = errors.New("image upload failed")
	ErrDelete     = errors.New("image delete failed")
)
