package database

import (
	"fmt"
	"log"
	"time"

	"peer_eval_backend/internal/config"
	"peer_eval_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Student{},
		&model.EvaluationForm{},
		&model.Evaluation{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 首次启动时插入一份默认量表，方便教师直接克隆修改
	var count int64
	db.Model(&model.EvaluationForm{}).Count(&count)
	if count == 0 {
		defaultForm := &model.EvaluationForm{
			FormID: fmt.Sprintf("form_%d", time.Now().UnixMilli()),
			Title:  "默认项目互评量表",
			Active: false,
			Scale:  model.Scale{Min: 1, Max: 5},
			Questions: model.QuestionList{
				{ID: "q1", Text: "内容完整性与正确性", Order: 1, Active: true},
				{ID: "q2", Text: "展示与表达", Order: 2, Active: true},
				{ID: "q3", Text: "创新性", Order: 3, Active: true},
				{ID: "q4", Text: "团队协作", Order: 4, Active: true},
			},
		}
		db.Create(defaultForm)
	}

	return db, nil
}
