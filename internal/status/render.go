package status

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eugenenazirov/newsdesk/internal/config"
	"github.com/eugenenazirov/newsdesk/internal/provider"
	"github.com/eugenenazirov/newsdesk/internal/schedule"
)

const reportTitle = "Newsdesk Configuration"

// Summary is everything the text report shows.
type Summary struct {
	Report       Report
	Provider     provider.ID
	Models       []string
	FeedCount    int
	StoragePath  string
	Credentials  []string
	NextDailyRun time.Time
	PostTimes    []string
}

// Summarize combines a report with the derived values of cfg.
// NextDailyRun and PostTimes are left empty if the workflow schedule cannot
// be built.
func Summarize(cfg config.Config, report Report, now time.Time) Summary {
	s := Summary{
		Report:      report,
		Provider:    cfg.PreferredProvider(),
		Models:      provider.Aliases(cfg.API.ProviderKeys()),
		FeedCount:   len(cfg.NewsSources.Feeds),
		StoragePath: cfg.Storage.BasePath,
		Credentials: cfg.API.Configured(),
	}
	if plan, err := schedule.NewPlan([]string{cfg.Workflow.DailyRunTime}, cfg.Workflow.Timezone); err == nil {
		s.NextDailyRun = plan.Next(now).In(plan.Location())
	}
	if posts, err := schedule.NewPlan(cfg.Workflow.SocialMediaPostTimes, cfg.Workflow.Timezone); err == nil {
		for _, c := range posts.Clocks() {
			s.PostTimes = append(s.PostTimes, c.String())
		}
	}
	return s
}

// Render writes the human-readable status report.
func Render(w io.Writer, s Summary) error {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	for _, f := range s.Report.Flags {
		mark := "[OK]  "
		if !f.OK {
			mark = "[FAIL]"
		}
		fmt.Fprintf(&b, "%s %s: %t\n", mark, Label(f.Name), f.OK)
	}
	if s.Report.RepairError != "" {
		fmt.Fprintf(&b, "Storage error: %s\n", s.Report.RepairError)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Preferred LLM: %s\n", s.Provider)
	fmt.Fprintf(&b, "Available Models: %s\n", joinOrNone(s.Models))
	fmt.Fprintf(&b, "News Sources: %d\n", s.FeedCount)
	fmt.Fprintf(&b, "Storage Path: %s\n", s.StoragePath)
	fmt.Fprintf(&b, "Credentials: %s\n", joinOrNone(s.Credentials))

	if !s.NextDailyRun.IsZero() {
		fmt.Fprintf(&b, "Next Daily Run: %s\n", s.NextDailyRun.Format(time.RFC3339))
	}
	if len(s.PostTimes) > 0 {
		fmt.Fprintf(&b, "Social Posts: %s\n", strings.Join(s.PostTimes, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

// Label turns a flag name such as "storage_ready" into "Storage Ready".
func Label(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
