package user

import "time"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProducer Role = "PRODUCER"
	RoleCarrier  Role = "CARRIER"
	RoleAdvisor  Role = "ADVISOR"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProducer, RoleCarrier, RoleAdvisor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        int64
	Email     string
	Password  string
	Role      Role
	FullName  string
	Phone     *string
	CreatedAt time.Time
}
