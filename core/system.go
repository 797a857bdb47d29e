package core

import (
	"github.com/asaskevich/govalidator"
)

// System stores system information.
type System struct {
	Admins   []string
	Genesis  int64
	Location string
	Version  string
}

// IsAdmin is admin
func (s *System) IsAdmin(userID string) bool {
	if len(s.Admins) == 0 {
		return false
	}

	return govalidator.IsIn(userID, s.Admins...)
}
