package utils

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_Getenv(t *testing.T) {
	testCases := []struct {
		desc     string
		key      string
		value    string
		fallback string
		want     string
	}{
		{
			desc:     "it should return the set value",
			key:      "CHATBOX_TEST_SET",
			value:    "somevalue",
			fallback: "fallback",
			want:     "somevalue",
		},
		{
			desc:     "it should return fallback on unset",
			key:      "CHATBOX_TEST_UNSET",
			value:    "",
			fallback: "fallback",
			want:     "fallback",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if tc.value != "" {
				t.Setenv(tc.key, tc.value)
			}
			got := Getenv(tc.key, tc.fallback)
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}
