package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

/*

User is an author and reader on the platform

Id: primary key, uuid generated at signup
CreatedAt: time when entity is created
Username: unique handle, used in profile urls
PasswordHash: bcrypt hash, never the raw password
IsAdmin: grants access to the admin console bindings

Following: authors this user subscribed to, "many-to-many" relation through
user_follows. The reverse side (who follows this user) is queried through the
join table directly.

*/

type User struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string
	IsAdmin      bool
	Following    []*User `json:"following" gorm:"many2many:user_follows;joinForeignKey:UserID;joinReferences:AuthorID"`
}

func (u User) String() string {
	return u.Username
}

// SetPassword hashes the raw password with bcrypt and stores the digest.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the raw password matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}
