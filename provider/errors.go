package provider

import "errors"

// ErrValidation tags input rejections so the HTTP layer can map them to 400
// without inspecting message text. Wrapped errors carry the field detail.
var ErrValidation = errors.New("invalid movie input")
