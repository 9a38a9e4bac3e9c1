package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionInputAcceptsFormStrings(t *testing.T) {
	var in CreateSessionInput
	body := `{"sport_id":"3","title":"Pickup","venue":"Court","date":"2030-07-01","time":"18:00",
		"team_a":"A","team_b":"B","max_participants":"10"}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	assert.Equal(t, FlexUint(3), in.SportID)
	assert.Equal(t, FlexInt(10), in.MaxParticipants)

	s, err := in.toSession(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), s.SportID)
	assert.Equal(t, 10, s.MaxParticipants)
	assert.Equal(t, "18:00:00", s.Time)
}

func TestFlexNumbers(t *testing.T) {
	cases := []struct {
		raw  string
		want FlexUint
		ok   bool
	}{
		{`7`, 7, true},
		{`"7"`, 7, true},
		{`" 42 "`, 42, true},
		{`null`, 0, true},
		{`""`, 0, true},
		{`"abc"`, 0, false},
		{`-1`, 0, false},
		{`1.5`, 0, false},
	}
	for _, tc := range cases {
		var n FlexUint
		err := json.Unmarshal([]byte(tc.raw), &n)
		if !tc.ok {
			assert.Error(t, err, tc.raw)
			continue
		}
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, n, tc.raw)
	}

	var i FlexInt
	require.NoError(t, json.Unmarshal([]byte(`"-4"`), &i))
	assert.Equal(t, FlexInt(-4), i)
	assert.Error(t, json.Unmarshal([]byte(`"ten"`), &i))
}
