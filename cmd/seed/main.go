package main

// 演示数据导入工具：通过 Store 契约向数据库写入一棵小型分类树与若干技能。
// 重复执行会追加记录，仅用于本地开发环境。

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"skilldex/internal/config"
	"skilldex/internal/storage"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)

	cfg := config.Load()
	db, err := storage.InitMySQL(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect mysql")
	}
	defer storage.CloseMySQL(db)

	store := storage.New(db)
	ctx := context.Background()

	type seedSkill struct {
		name       string
		difficulty string
	}
	type seedTopic struct {
		name   string
		desc   string
		skills []seedSkill
		childs []seedTopic
	}

	tree := []seedTopic{
		{
			name: "Mathematics", desc: "Numbers, structures and change",
			skills: []seedSkill{{"Mental arithmetic", "beginner"}},
			childs: []seedTopic{
				{name: "Algebra", skills: []seedSkill{{"Linear equations", "beginner"}, {"Polynomial factoring", "intermediate"}}},
				{name: "Calculus", skills: []seedSkill{{"Derivatives", "intermediate"}, {"Integrals", "advanced"}}},
			},
		},
		{
			name: "Programming", desc: "Software construction",
			childs: []seedTopic{
				{name: "Go", skills: []seedSkill{{"Goroutines", "intermediate"}, {"Error handling", "beginner"}}},
			},
		},
	}

	var insert func(parentID string, topics []seedTopic)
	insert = func(parentID string, topics []seedTopic) {
		for _, st := range topics {
			t := &storage.Topic{ID: uuid.NewString(), Name: st.name, Description: st.desc, ParentTopicID: parentID}
			if err := store.CreateTopic(ctx, t); err != nil {
				log.WithError(err).WithField("topic", st.name).Fatal("create topic")
			}
			log.WithFields(log.Fields{"id": t.ID, "name": t.Name}).Info("topic created")
			for _, ss := range st.skills {
				sk := &storage.Skill{ID: uuid.NewString(), Name: ss.name, TopicID: t.ID, Difficulty: ss.difficulty}
				if err := store.CreateSkill(ctx, sk); err != nil {
					log.WithError(err).WithField("skill", ss.name).Fatal("create skill")
				}
				log.WithFields(log.Fields{"id": sk.ID, "name": sk.Name, "topic": t.Name}).Info("skill created")
			}
			insert(t.ID, st.childs)
		}
	}
	insert("", tree)

	log.Info("seed finished")
}
