package entity

import (
	"time"
)

// User is the only persisted entity. The id is generated by the database
// and immutable once assigned; email is unique at the storage layer.
//
// CreatedAt is persisted but intentionally kept out of the wire shape.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
}
