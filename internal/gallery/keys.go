// File: internal/gallery/keys.go
package gallery

import (
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"time"
)

// ObjectKey builds a storage key as {epoch-millis}-{random-base36}.{ext}.
// ext is everything after the last dot of the original name, or the whole name when it has none
func ObjectKey(originalName string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(originalName, "\\", "/"))

	ext := base
	if i := strings.LastIndex(base, "."); i >= 0 {
		ext = base[i+1:]
	}

	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(rand.Uint64(), 36) + "." + ext
}

func newObjectKey(originalName string) string {
	return ObjectKey(originalName, time.Now())
}
