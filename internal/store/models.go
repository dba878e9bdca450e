package store

import "time"

// Setting keys.
const (
	KeyTarget      = "target"
	KeyDefaultRows = "default_rows"
	KeyAutoRecalc  = "auto_recalc"
)

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
