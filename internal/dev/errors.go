package dev

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Error is a reportable anomaly that does not roll anything back, e.g. a
// payment sub-call failing after ownership has already transferred.
type Error struct {
	Id        string                 `json:"id"`
	Time      time.Time              `json:"time"`
	Component string                 `json:"component"`
	Name      string                 `json:"name"`
	Error     string                 `json:"error"`
	Extra     map[string]interface{} `json:"extra"`
}

// Slug must be stable across calls; the index buffer keys requests by it
// and the bulk retry looks failed documents up by the same id.
func (e Error) Slug() string {
	return e.Id
}

func NewError(component, name string, err error, extra map[string]interface{}) Error {
	u, _ := uuid.NewV4()

	return Error{
		Id:        u.String(),
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Extra:     extra,
	}
}
