package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the durable per-user record. Only fields that must survive a
// process restart live here; the candidate set and funnel state are
// ephemeral session data.
type User struct {
	Id                 uuid.UUID
	Username           string
	Language           string
	StorageVolume      *int
	OS                 string
	Email              string
	CycleStartDate     string // yyyy-mm-dd, empty until set
	SelectedProductIds []uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
