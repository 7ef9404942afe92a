package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetTimestamp() int64 {
	return time.Now().Unix()
}

func GetTimeString() string {
	now := time.Now()
	return fmt.Sprintf("%s%d", now.Format("20060102150405"), now.UnixNano()%1e9)
}

func GenRequestID() string {
	return GetTimeString() + GetRandomNumberString(8)
}

// GenTaskID returns ids like "vg_<32 hex chars>", used as the public key of a
// generation task.
func GenTaskID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func GetRandomNumberString(length int) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	digits := make([]byte, 0, length)
	for i := 0; i < len(raw) && len(digits) < length; i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	for len(digits) < length {
		digits = append(digits, '0')
	}
	return string(digits)
}
