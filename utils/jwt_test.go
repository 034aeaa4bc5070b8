package utils

import (
	"testing"
	"time"

	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCarriesActor(t *testing.T) {
	district, village := "Sintang", "Kelam"
	u := &entity.User{ID: "u-1", Role: entity.RoleVillage, District: &district, Village: &village}

	tok, err := GenerateToken(u, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.Actor{ID: "u-1", Role: entity.RoleVillage, District: "Sintang", Village: "Kelam"}, claims.Actor())
}

func TestParseTokenRejects(t *testing.T) {
	u := &entity.User{ID: "u-1", Role: entity.RoleAgency}

	tok, err := GenerateToken(u, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(tok, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken(u, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
