package tui

import (
	"fmt"
	"strings"

	"github.com/deparrow/console/models"
)

type jobsModel struct {
	jobs   []models.Job
	err    error
	loaded bool
	cursor int

	confirming    bool
	pendingCancel string
}

func newJobsModel() jobsModel {
	return jobsModel{}
}

func (m jobsModel) withData(jobs []models.Job, err error) jobsModel {
	m.loaded = true
	m.err = err
	if err == nil {
		m.jobs = jobs
		if m.cursor >= len(jobs) {
			m.cursor = max(0, len(jobs)-1)
		}
	}
	return m
}

func (m *jobsModel) move(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.jobs)-1)
}

func (m jobsModel) current() (models.Job, bool) {
	if m.cursor < 0 || m.cursor >= len(m.jobs) {
		return models.Job{}, false
	}
	return m.jobs[m.cursor], true
}

func (m jobsModel) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to load jobs: " + m.err.Error())
	}
	if !m.loaded {
		return helpStyle.Render("loading jobs...")
	}
	if len(m.jobs) == 0 {
		return helpStyle.Render("no jobs yet")
	}

	var b strings.Builder
	for i, job := range m.jobs {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		// Pad before styling so ANSI codes do not skew column widths.
		status := statusLabel(job.Status, fmt.Sprintf("%-10s", job.Status))
		line := fmt.Sprintf("%s%-22s %s %-24s %s",
			cursor,
			truncate(job.ID, 22),
			status,
			truncate(job.Name, 24),
			formatCredits(job.CreditCost),
		)
		b.WriteString(line + "\n")
	}

	if m.confirming {
		b.WriteString("\n" + noticeStyle.Render(
			fmt.Sprintf("cancel job %s? (y/n)", m.pendingCancel)))
	} else if job, ok := m.current(); ok {
		b.WriteString("\n" + helpStyle.Render(jobDetail(job)))
	}
	return b.String()
}

func jobDetail(job models.Job) string {
	detail := fmt.Sprintf("submitted %s", job.SubmittedAt.Format("2006-01-02 15:04:05"))
	if job.CompletedAt != nil {
		detail += fmt.Sprintf("  completed %s", job.CompletedAt.Format("15:04:05"))
	}
	if job.Error != "" {
		detail += "  error: " + job.Error
	}
	return detail
}

func statusLabel(status models.JobStatus, cell string) string {
	switch status {
	case models.JobStatusRunning:
		return onlineStyle.Render(cell)
	case models.JobStatusFailed:
		return errorStyle.Render(cell)
	default:
		return cell
	}
}
