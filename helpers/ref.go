package helpers

import "github.com/google/uuid"

func NewRefID() string {
	return uuid.New().String()
}
