package model_test

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsExpired(t *testing.T) {
	fresh := model.Session{IsValid: true, ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, fresh.IsExpired())

	invalidated := model.Session{IsValid: false, ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, invalidated.IsExpired(), "invalidated session is expired even before its expiry")

	past := model.Session{IsValid: true, ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, past.IsExpired(), "expiry in the past wins over the validity flag")
}

func TestNewSessionTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := model.NewSessionToken()
		assert.NotEmpty(t, token)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestUserFullName(t *testing.T) {
	u := model.User{FirstName: "Ivan", LastName: "Ivanov", Patronymic: "Ivanovich"}
	assert.Equal(t, "Ivanov Ivan Ivanovich", u.FullName())

	u.Patronymic = ""
	assert.Equal(t, "Ivanov Ivan", u.FullName())
}
