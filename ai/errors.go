package ai

import "errors"

// ErrEmptyResponse is returned when a model answers without any choices.
var ErrEmptyResponse = errors.New("model returned no content")
