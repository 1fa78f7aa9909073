package common

import "github.com/google/uuid"

// GenUUID generates a new UUID string.
func GenUUID() string {
	return uuid.NewString()
}
