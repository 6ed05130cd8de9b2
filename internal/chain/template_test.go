package chain

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func Test_Template_Fill(t *testing.T) {
	testCases := []struct {
		desc     string
		template string
		question string
		want     string
	}{
		{
			desc:     "it should frame the question as a conversation turn",
			template: "",
			question: "What's the weather?",
			want:     "Human: What's the weather?\n\nAssistant:",
		},
		{
			desc:     "it should honor a custom template",
			template: "Q: {question}\nA:",
			question: "why",
			want:     "Q: why\nA:",
		},
		{
			desc:     "it should leave templates without placeholder untouched",
			template: "no placeholder here",
			question: "ignored",
			want:     "no placeholder here",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := NewTemplate(tc.template).Fill(tc.question)
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}
