package dotsync

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/dotsync/pkg/logging"
)

//go:embed topics/*.md
var topicsFS embed.FS

// helpTopics returns the embedded topic files rooted at topics/
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicsFS, "topics")
	logging.Must(err, "Embedded help topics are unreadable")
	return sub
}
