package handler

import (
	"fmt"
	"strconv"
)

// DeleteResponse is the DELETE /employees/:id body.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
