package email

import "errors"

var ErrEmailNotFound = errors.New("email not found")
