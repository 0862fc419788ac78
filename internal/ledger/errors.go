package ledger

import "errors"

// ErrCorruptWatermark is returned when a stored watermark cannot be decoded.
var ErrCorruptWatermark = errors.New("corrupt watermark value")
