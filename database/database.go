package database

import (
	"context"

	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db             *gorm.DB
	profileRepo    *ProfileRepo
	experienceRepo *ExperienceRepo
	projectRepo    *ProjectRepo
	activityRepo   *ActivityRepo
	blogPostRepo   *BlogPostRepo
	blogTagRepo    *BlogTagRepo
	mediaRepo      *MediaRepo
	settingRepo    *SettingRepo
	userRoleRepo   *UserRoleRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		profileRepo:    NewProfileRepo(db),
		experienceRepo: NewExperienceRepo(db),
		projectRepo:    NewProjectRepo(db),
		activityRepo:   NewActivityRepo(db),
		blogPostRepo:   NewBlogPostRepo(db),
		blogTagRepo:    NewBlogTagRepo(db),
		mediaRepo:      NewMediaRepo(db),
		settingRepo:    NewSettingRepo(db),
		userRoleRepo:   NewUserRoleRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ActivityRepo() *ActivityRepo {
	return d.activityRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

func (d Database) SettingRepo() *SettingRepo {
	return d.settingRepo
}

func (d Database) UserRoleRepo() *UserRoleRepo {
	return d.userRoleRepo
}

// Migrate creates or updates every table the application owns
func (d Database) Migrate() error {
	return models.Migrate(d.db)
}

// Ping checks that the primary connection answers
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
