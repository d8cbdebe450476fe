package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/trellisboard/trellis/internal/domain"
	"github.com/trellisboard/trellis/internal/ui/styles"
)

// renderCard renders a parent task card
func renderCard(task domain.Task, isCursor, isGrabbed, expanded bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isGrabbed {
		cardStyle = s.CardGrabbed
	} else if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Expansion chevron for tasks with subtasks
	chevron := ""
	if task.SubtaskCount > 0 {
		if expanded {
			chevron = "▾ "
		} else {
			chevron = "▸ "
		}
	}

	cursor := ""
	if isCursor {
		cursor = "▶"
	}

	check := "☐ "
	if task.Status == domain.StatusCompleted {
		check = "✓ "
	}

	maxTitleLen := width - 4 - len(chevron)
	title := task.Title
	if len(title) > maxTitleLen && maxTitleLen > 1 {
		title = title[:maxTitleLen-1] + "…"
	}

	titleLine := cursor + chevron + check + s.TaskTitle.Render(title)

	badges := []string{s.PriorityBadge(task.Priority.Rank()).Render(string(task.Priority))}
	if task.SubtaskCount > 0 {
		badges = append(badges, s.SubtaskProgress.Render(
			fmt.Sprintf("✓%d/%d", task.CompletedSubtaskCount, task.SubtaskCount)))
	}
	if task.DueDate != nil {
		badges = append(badges, renderDueDate(*task.DueDate, task.Status, s))
	}
	for _, a := range task.Assignees {
		badges = append(badges, s.Assignee.Render(a.Initials()))
	}
	badgeLine := strings.Join(badges, " ")

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, badgeLine)
	return cardStyle.Render(content)
}

// renderSubtaskRow renders one indented subtask line under its parent card
func renderSubtaskRow(task domain.Task, isCursor, isGrabbed bool, width int, s *styles.Styles) string {
	rowStyle := s.SubtaskRow
	if isCursor || isGrabbed {
		rowStyle = s.SubtaskRowActive
	}

	check := "☐"
	if task.Status == domain.StatusCompleted {
		check = "✓"
	}

	marker := "·"
	if isGrabbed {
		marker = "◆"
	} else if isCursor {
		marker = "▶"
	}

	line := fmt.Sprintf("%s %s %s", marker, check, task.Title)
	maxLen := width - 4
	if len(line) > maxLen && maxLen > 1 {
		line = line[:maxLen-1] + "…"
	}
	return rowStyle.Width(width).Render(line)
}

// renderDueDate formats a due date, highlighting overdue open tasks
func renderDueDate(due time.Time, status domain.Status, s *styles.Styles) string {
	text := due.Format("Jan 2")
	if status != domain.StatusCompleted && due.Before(time.Now()) {
		return s.DueDateLate.Render(text)
	}
	return s.DueDate.Render(text)
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor, isGrabbed, expanded bool, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isGrabbed, expanded, width, s)
}

// RenderSubtaskRow is the exported version for testing
func RenderSubtaskRow(task domain.Task, isCursor, isGrabbed bool, width int, s *styles.Styles) string {
	return renderSubtaskRow(task, isCursor, isGrabbed, width, s)
}
