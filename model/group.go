package model

import "time"

/*

Group is a named category a post may optionally be filed under

Id: primary key, uuid generated at creation
CreatedAt: time when entity is created
Title: group's display name
Slug: unique url-safe identifier, groups are addressed by slug in routes
Description: free-form text shown on the group page
Posts: all posts filed under this group, "has-many" relation. The group only
references posts, deleting a group never deletes them.

*/

type Group struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	Posts       []*Post `json:"posts"`
}

func (g Group) String() string {
	return g.Title
}
