package utils

import (
	"fmt"
	"strings"
	"time"
)

// referencePrefix prefixes every remittance reference number.
const referencePrefix = "RF"

// GenerateReferenceNumber produces a unique remittance reference number of the
// form RF-<yyyymmddHHMMSS>-<rand>. The random suffix makes collisions within
// the same second practically impossible; the unique index on the column is
// the final arbiter.
func GenerateReferenceNumber(now time.Time) (string, error) {
	suffix, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", referencePrefix, now.UTC().Format("20060102150405"), strings.ToUpper(suffix)), nil
}
