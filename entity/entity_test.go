package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to DisasterStatus
		ok       bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusDraft, StatusVerified, false},
		{StatusDraft, StatusRejected, false},
		{StatusSubmitted, StatusVerified, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusDraft, true},
		{StatusVerified, StatusDraft, true},
		{StatusVerified, StatusSubmitted, true},
		{StatusVerified, StatusRejected, false},
		{StatusRejected, StatusVerified, false},
		{StatusRejected, StatusSubmitted, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestActorValidate(t *testing.T) {
	assert.NoError(t, Actor{ID: "a", Role: RoleAgency}.Validate())
	assert.NoError(t, Actor{ID: "k", Role: RoleDistrict, District: "Sintang"}.Validate())
	assert.NoError(t, Actor{ID: "d", Role: RoleVillage, District: "Sintang", Village: "Kelam"}.Validate())

	assert.ErrorIs(t, Actor{Role: RoleAgency}.Validate(), ErrActorNoID)
	assert.ErrorIs(t, Actor{ID: "x", Role: "admin"}.Validate(), ErrActorRole)
	assert.ErrorIs(t, Actor{ID: "k", Role: RoleDistrict}.Validate(), ErrActorNeedsDistrict)
	assert.ErrorIs(t, Actor{ID: "d", Role: RoleVillage, District: "Sintang"}.Validate(), ErrActorNeedsVillage)
}

func TestUserActor(t *testing.T) {
	district, village := "Sintang", "Kelam"
	u := User{ID: "u1", Role: RoleVillage, District: &district, Village: &village}
	a := u.Actor()
	assert.Equal(t, "Sintang", a.District)
	assert.Equal(t, "Kelam", a.Village)
	assert.NoError(t, a.Validate())
}

func TestPublicFacilitiesValidate(t *testing.T) {
	assert.NoError(t, PublicFacilities{FacilitySchool: {Heavy: 1}}.Validate())
	assert.ErrorIs(t, PublicFacilities{"bandara": {}}.Validate(), ErrUnknownFacility)
	assert.ErrorIs(t, PublicFacilities{FacilityBridge: {Light: -1}}.Validate(), ErrNegativeFacility)
}

func TestDisasterTypeValid(t *testing.T) {
	for _, dt := range DisasterTypes() {
		assert.True(t, dt.Valid())
	}
	assert.False(t, DisasterType("tsunami").Valid())
}
