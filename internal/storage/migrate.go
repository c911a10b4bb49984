package storage

import (
	"time"

	"gorm.io/gorm"
)

// 本文件定义服务使用的所有 GORM 模型，集中管理数据结构。

// Topic 是层级分类节点；ParentTopicID 为空表示根节点。
type Topic struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:190;index:idx_topics_name" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	ParentTopicID string    `gorm:"size:36;index" json:"parentTopicID"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// Skill 是挂在某个 Topic 下的叶子记录。
type Skill struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:190;index:idx_skills_name" json:"name"`
	TopicID    string    `gorm:"size:36;index" json:"topicID"`
	Difficulty string    `gorm:"size:32" json:"difficulty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// autoMigrate 执行数据库自动迁移。
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Topic{}, &Skill{})
}
