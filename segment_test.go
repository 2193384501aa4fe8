package phantastro

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The -json CLI output feeds the dashboard directly, so segments must keep a
// stable lowercase wire form with the state rendered as its label.
func TestSegmentJSON(t *testing.T) {
	s := newSegment(22.25, 29.5, StateVisible, Meta{
		Rise: "22:15",
		Set:  "05:30",
	})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"start_day": 0,
		"start_hour": 22.25,
		"end_day": 1,
		"end_hour": 5.5,
		"total_hours": 7.25,
		"state": "visible",
		"meta": {"rise": "22:15", "set": "05:30"}
	}`, string(data))
}

func TestSegmentJSON_EmptyMeta(t *testing.T) {
	s := newSegment(0, 10.5, StateNight, Meta{})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"start_day": 0,
		"start_hour": 0,
		"end_day": 0,
		"end_hour": 10.5,
		"total_hours": 10.5,
		"state": "night",
		"meta": {}
	}`, string(data))
}
