package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		body string
		want Command
	}{
		{"clock in", Command{Type: CommandClockIn}},
		{"Clock In", Command{Type: CommandClockIn}},
		{"in", Command{Type: CommandClockIn}},
		{"clock out", Command{Type: CommandClockOut}},
		{"OUT", Command{Type: CommandClockOut}},

		{"omw 123", Command{Type: CommandOnMyWay, JobNumber: "123"}},
		{"OMW job 123", Command{Type: CommandOnMyWay, JobNumber: "123"}},
		{"On my way #45", Command{Type: CommandOnMyWay, JobNumber: "45"}},
		{"heading job JOB-00012", Command{Type: CommandOnMyWay, JobNumber: "JOB-00012"}},
		{"heading to the shop", Command{Type: CommandUnknown}},

		{"start 123", Command{Type: CommandStartJob, JobNumber: "123"}},
		{"start #JOB-45", Command{Type: CommandStartJob, JobNumber: "JOB-45"}},
		{"Begin job: 7", Command{Type: CommandStartJob, JobNumber: "7"}},

		{"done 123", Command{Type: CommandFinishJob, JobNumber: "123"}},
		{"Finished job 9", Command{Type: CommandFinishJob, JobNumber: "9"}},
		{"complete #JOB-00003", Command{Type: CommandFinishJob, JobNumber: "JOB-00003"}},

		{"summary 123: replaced the filter", Command{Type: CommandJobSummary, JobNumber: "123", Summary: "replaced the filter"}},
		{"Summary #JOB-45 swapped pump seal", Command{Type: CommandJobSummary, JobNumber: "JOB-45", Summary: "swapped pump seal"}},

		{"jobs", Command{Type: CommandListJobs}},
		{"my jobs", Command{Type: CommandListJobs}},
		{"show me my jobs please", Command{Type: CommandListJobs}},

		{"help", Command{Type: CommandHelp}},
		{"?", Command{Type: CommandHelp}},

		{"random text", Command{Type: CommandUnknown}},
		{"start", Command{Type: CommandUnknown}},
		{"", Command{Type: CommandUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.body))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// on-my-way outranks finish when both patterns appear
	cmd := Classify("on my way 12, will be done 12 soon")
	assert.Equal(t, CommandOnMyWay, cmd.Type)
	assert.Equal(t, "12", cmd.JobNumber)

	// clock in outranks everything
	cmd = Classify("clock in and start 5")
	assert.Equal(t, CommandClockIn, cmd.Type)
}

func TestClassifyKeepsTokenCasing(t *testing.T) {
	cmd := Classify("START job-00042")
	assert.Equal(t, CommandStartJob, cmd.Type)
	assert.Equal(t, "job-00042", cmd.JobNumber)
}

func TestExtractJobToken(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"after 100", "100"},
		{"photo for #123", "123"},
		{"before JOB-00100", "JOB-00100"},
		{"no numbers here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractJobToken(tt.body), tt.body)
	}
}
