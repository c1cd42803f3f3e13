package notify

import (
	"fmt"
	"strings"

	"github.com/hamed0406/watchtower/internal/domain"
)

const checkTimeLayout = "2006-01-02 15:04:05 UTC"

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

func headline(n int) string {
	if n == 1 {
		return "Uptime Alert: 1 domain is down"
	}
	return fmt.Sprintf("Uptime Alert: %d domains are down", n)
}

// errorLabel is the human wording of an outcome's failure.
func errorLabel(o domain.CheckOutcome) string {
	switch o.Kind {
	case domain.ErrTimeout:
		return "Timeout"
	case domain.ErrConnectionFailure:
		return "Connection failed"
	case domain.ErrHTTP:
		return fmt.Sprintf("HTTP %d", o.StatusCode)
	default:
		return "Error"
	}
}

// buildMessage renders the alert for s. The plain text field repeats every
// failure so clients that ignore blocks still get the full picture.
func buildMessage(s domain.RunSummary) slackPayload {
	failures := s.Failures()
	title := headline(len(failures))
	when := s.Timestamp.UTC().Format(checkTimeLayout)

	var sb strings.Builder
	fmt.Fprintf(&sb, ":rotating_light: *%s*\nCheck Time: %s", title, when)

	blocks := []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: title}},
		{Type: "section", Text: &slackText{Type: "mrkdwn", Text: "*Check Time:* " + when}},
		{Type: "divider"},
	}
	for _, f := range failures {
		var name, url string
		if f.Target != nil {
			name, url = f.Target.Name, f.Target.URL
		}
		label := errorLabel(f)
		ms := f.ResponseTime.Milliseconds()

		fmt.Fprintf(&sb, "\n• %s (%s): %s, %dms", name, url, label, ms)
		blocks = append(blocks, slackBlock{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Domain:*\n" + name},
				{Type: "mrkdwn", Text: "*Error:*\n" + label},
				{Type: "mrkdwn", Text: fmt.Sprintf("*URL:*\n<%s|%s>", url, url)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Response Time:*\n%dms", ms)},
			},
		})
	}
	return slackPayload{Text: sb.String(), Blocks: blocks}
}
