package postgres

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"conduit/internal/domain/entity"
	"conduit/internal/infra/persistence/model"
)

func TestUserMapperRoundtrip(t *testing.T) {
	image := "https://example.com/avatar.png"
	now := time.Now()

	userM := &model.UserModel{
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "$2a$10$hash",
		Bio:       "likes go",
		Image:     &image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	user := toUserDomain(userM)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.PasswordHash("$2a$10$hash"), user.PasswordHash)
	assert.Equal(t, &image, user.Image)
	assert.Equal(t, now, user.CreatedAt)

	back := fromUserDomain(user)
	assert.Equal(t, userM.Email, back.Email)
	assert.Equal(t, userM.Username, back.Username)
	assert.Equal(t, userM.Password, back.Password)
	assert.Equal(t, userM.Bio, back.Bio)
	assert.Equal(t, userM.Image, back.Image)
}

func TestUserMapperNil(t *testing.T) {
	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}

func TestConstraintViolationDetection(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(gorm.ErrRecordNotFound))

	notNull := errors.New(`ERROR: null value in column "password" violates not-null constraint (SQLSTATE 23502)`)
	assert.True(t, isNotNullConstraintViolation(notNull))
	assert.False(t, isNotNullConstraintViolation(assert.AnError))
}
