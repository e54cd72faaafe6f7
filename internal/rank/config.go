// internal/rank/config.go
package rank

import "time"

type Config struct {
	Model              string
	Timeout            time.Duration
	ResumeTextMaxChars int
}
