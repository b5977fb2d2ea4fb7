package tracker

import (
	"crypto/rand"
	"encoding/base32"
	"time"
)

// generateSerial returns DOC-YYYYMMDD-XXXX with a random base32 suffix.
func generateSerial(now time.Time) string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	suffix := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b[:])[:4]
	return "DOC-" + now.Format("20060102") + "-" + suffix
}
