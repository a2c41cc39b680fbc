package model

import "time"

// Post 用户发布的内容；作者删除时级联删除，分组删除时 group_id 置空
type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Image     string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	AuthorID  uint64    `gorm:"index:idx_post_author;not null" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID   *uint64   `gorm:"index:idx_post_group" json:"group_id,omitempty"`
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }
