package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateTrackingNumber builds a unique shipment tracking number from the
// current UTC time plus a cryptographic random suffix.
func GenerateTrackingNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"ENV-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}
