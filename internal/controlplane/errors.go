package controlplane

import "errors"

// ErrTaskNotFound is returned by the ID-addressed task operations when
// the task does not exist. Utterance handling never returns it; a missed
// title lookup is reported in-band through the Result.
var ErrTaskNotFound = errors.New("task not found")
