package utils

import (
	"os"
	"testing"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/utils/dotenv"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestCreateTempDB(t *testing.T) {
	_, dbName := CreateTempDB(t)

	exists, err := IsDatabaseExist(dbName)
	assert.Nil(t, err)
	assert.True(t, exists)
}

func TestFollowEdgeUniqueness(t *testing.T) {
	db, _ := CreateTempDB(t)

	user := TestCreateUserAndValidate(t, db, "reader", "password")
	author := TestCreateUserAndValidate(t, db, "writer", "password")
	TestCreateFollowAndValidate(t, db, user, author)

	// The composite primary key rejects a second identical edge.
	err := db.Create(&model.UserFollow{UserID: user.Id, AuthorID: author.Id}).Error
	assert.Error(t, err)

	// The upsert form the handlers use is a clean no-op instead.
	err = db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserFollow{UserID: user.Id, AuthorID: author.Id}).Error
	assert.Nil(t, err)

	var count int64
	db.Model(&model.UserFollow{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIsDatabaseExist(t *testing.T) {
	exists, err := IsDatabaseExist("postgres")
	assert.Nil(t, err)
	assert.True(t, exists)

	exists, err = IsDatabaseExist("DOES_NOT_EXIST")
	assert.Nil(t, err)
	assert.False(t, exists)
}
