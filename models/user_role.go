package models

import "github.com/google/uuid"

const RoleAdmin = "admin"

// hasRoleFunction is the role check the admin guard calls on Postgres.
const hasRoleFunction = `CREATE OR REPLACE FUNCTION has_role(_user_id uuid, _role text)
RETURNS boolean
LANGUAGE sql
STABLE
SECURITY DEFINER
SET search_path = public
AS $$
  SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = _user_id AND role = _role)
$$`

type UserRole struct {
	Base
	UserID uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_role_unique"`
	Role   string    `json:"role" db:"role" gorm:"type:text;not null;uniqueIndex:idx_user_role_unique"`
}

func (UserRole) TableName() string { return "user_roles" }
