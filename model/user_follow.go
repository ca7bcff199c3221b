package model

import "time"

/*

UserFollow is a directed "many-to-many" edge meaning user subscribes to
author's posts

UserID: the subscribing user
AuthorID: the author being subscribed to
CreatedAt: time when relation is created

The composite primary key is what guarantees at most one edge per
(user, author) pair, so follow creation can be a plain upsert instead of a
racy existence check followed by an insert. Self-follows are rejected at the
handler layer, the table itself does not care.

*/

type UserFollow struct {
	UserID    string `gorm:"primaryKey"`
	AuthorID  string `gorm:"primaryKey"`
	CreatedAt time.Time
}
