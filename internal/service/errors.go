package service

import "errors"

// ErrDuplicateDependency indicates a link of the same type already joins the
// two activities.
var ErrDuplicateDependency = errors.New("dependency already exists")
