package model

const (
	// DefaultAvatar 未上传头像时使用的静态资源
	DefaultAvatar = "/static/img/missing_avatar.svg"
	// DefaultAbout 新建资料的默认简介
	DefaultAbout = "The author has not filled in this section yet."
	// AboutMaxLength 简介最大字符数
	AboutMaxLength = 300
)

// UserProfile 与 User 一对一
type UserProfile struct {
	ID     uint64 `gorm:"primaryKey" json:"-"`
	UserID uint64 `gorm:"uniqueIndex;not null" json:"-"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Avatar string `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	About  string `gorm:"type:varchar(300)" json:"about"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// AvatarURL 返回头像地址，mediaPrefix 形如 "/media/"
func (p *UserProfile) AvatarURL(mediaPrefix string) string {
	if p == nil || p.Avatar == "" {
		return DefaultAvatar
	}
	return mediaPrefix + p.Avatar
}
