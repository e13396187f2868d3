package ocr

import "errors"

// ErrNoText is returned when every candidate pass produced an empty transcript.
var ErrNoText = errors.New("no text detected")
