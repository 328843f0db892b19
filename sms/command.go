package sms

import (
	"regexp"
	"strings"
)

type CommandType string

const (
	CommandClockIn    CommandType = "clock_in"
	CommandClockOut   CommandType = "clock_out"
	CommandOnMyWay    CommandType = "on_my_way"
	CommandStartJob   CommandType = "start_job"
	CommandFinishJob  CommandType = "finish_job"
	CommandJobSummary CommandType = "job_summary"
	CommandListJobs   CommandType = "list_jobs"
	CommandHelp       CommandType = "help"
	CommandUnknown    CommandType = "unknown"
)

// Command is the parse result for one inbound message body.
type Command struct {
	Type      CommandType
	JobNumber string
	Summary   string
}

// Job number tokens are a bare integer or a "job-<n>" token, optionally
// preceded by "job", "#" or ":" noise. Matching is done against the raw
// body with (?i) so the extracted token keeps the sender's casing.
var (
	onMyWayRe = regexp.MustCompile(`(?i)(on my way|omw|heading|enroute)\s*(job)?[:\s#]*(\d+|job-\d+)`)
	startRe   = regexp.MustCompile(`(?i)(start|begin|starting)\s*(job)?[:\s#]*(\d+|job-\d+)`)
	finishRe  = regexp.MustCompile(`(?i)(done|finish|complete|finished|completed)\s*(job)?[:\s#]*(\d+|job-\d+)`)
	summaryRe = regexp.MustCompile(`(?i)summary[:\s#]*(\d+|job-\d+)[:\s]*(.*)`)
)

type matcher func(raw, lower string) (Command, bool)

// matchers run in priority order; the first hit wins. Overlapping
// patterns ("on my way 12, will be done soon" contains both an on-my-way
// and a finish token) depend on this order staying fixed.
var matchers = []matcher{
	func(raw, lower string) (Command, bool) {
		if strings.HasPrefix(lower, "clock in") || lower == "in" {
			return Command{Type: CommandClockIn}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if strings.HasPrefix(lower, "clock out") || lower == "out" {
			return Command{Type: CommandClockOut}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if m := onMyWayRe.FindStringSubmatch(raw); m != nil {
			return Command{Type: CommandOnMyWay, JobNumber: m[3]}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if m := startRe.FindStringSubmatch(raw); m != nil {
			return Command{Type: CommandStartJob, JobNumber: m[3]}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if m := finishRe.FindStringSubmatch(raw); m != nil {
			return Command{Type: CommandFinishJob, JobNumber: m[3]}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if m := summaryRe.FindStringSubmatch(raw); m != nil {
			return Command{Type: CommandJobSummary, JobNumber: m[1], Summary: strings.TrimSpace(m[2])}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if strings.Contains(lower, "my jobs") || lower == "jobs" || strings.Contains(lower, "list jobs") {
			return Command{Type: CommandListJobs}, true
		}
		return Command{}, false
	},
	func(raw, lower string) (Command, bool) {
		if lower == "help" || lower == "?" {
			return Command{Type: CommandHelp}, true
		}
		return Command{}, false
	},
}

// Classify trims and classifies a message body into a Command.
// Unmatched bodies classify as CommandUnknown, never as an error.
func Classify(body string) Command {
	raw := strings.TrimSpace(body)
	lower := strings.ToLower(raw)

	for _, match := range matchers {
		if cmd, ok := match(raw, lower); ok {
			return cmd
		}
	}
	return Command{Type: CommandUnknown}
}

// mediaJobRe is looser than the command patterns: for photo attachments
// any job-number-looking token anywhere in the body is good enough.
var mediaJobRe = regexp.MustCompile(`(?i)#?(\d+|job-\d+)`)

// ExtractJobToken pulls the first job-number token out of a body, or ""
// when there is none.
func ExtractJobToken(body string) string {
	if m := mediaJobRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}
