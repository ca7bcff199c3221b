package model

import "time"

/*

Comment is a reader's note attached to a post

Id: primary key, uuid generated at creation
CreatedAt: time when the comment was left
Text: comment's content in plain text
AuthorID:
Author: user who left the comment, "belongs-to" relation, required
PostID:
Post: post this comment is attached to, "belongs-to" relation, required.
Comments are immutable once created and share their post's lifetime.

*/

type Comment struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Text      string
	AuthorID  string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    string
}
