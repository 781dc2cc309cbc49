package notify

import (
	"fmt"
	"html"
	"strings"

	"stairs/gym-reports/internal/domain"
)

// WeeklySubject builds the email subject line for a weekly report.
func WeeklySubject(rep *domain.WeeklyReport) string {
	return fmt.Sprintf("Your Weekly Progress Report - %s to %s",
		rep.WeekStart.Format("2006-01-02"), rep.WeekEnd.Format("2006-01-02"))
}

// WeeklyMessage renders the WhatsApp text for a weekly report.
func WeeklyMessage(patientName string, rep *domain.WeeklyReport) string {
	var b strings.Builder

	b.WriteString("🏋️ STAIRS GYM - Weekly Progress Report\n\n")
	fmt.Fprintf(&b, "Hi %s! 👋\n\n", patientName)
	fmt.Fprintf(&b, "📅 Week: %s to %s\n\n",
		rep.WeekStart.Format("2006-01-02"), rep.WeekEnd.Format("2006-01-02"))
	b.WriteString("📊 YOUR STATS:\n")
	fmt.Fprintf(&b, "• Sessions Completed: %d\n", rep.TotalSessions)
	fmt.Fprintf(&b, "• Total Training Time: %d minutes\n\n", rep.TotalMinutes)
	b.WriteString(rep.Summary + "\n\n")
	b.WriteString("💪 IMPROVEMENTS NOTED:\n")
	b.WriteString(textOr(rep.Improvements, "Keep up the great work!") + "\n\n")
	b.WriteString("⚠️ AREAS TO FOCUS:\n")
	b.WriteString(textOr(rep.Concerns, "None - you're doing great!") + "\n\n")
	b.WriteString("🎯 NEXT WEEK RECOMMENDATIONS:\n")
	b.WriteString(textOr(rep.Recommendations, "Continue with your current program.") + "\n\n")
	b.WriteString("Keep pushing forward! 💪\n- Your Stairs Gym Team\n")

	return b.String()
}

// WeeklyEmailHTML renders the weekly report as a standalone HTML email,
// including a table of the week's sessions.
func WeeklyEmailHTML(patientName string, rep *domain.WeeklyReport, workouts []domain.Workout) string {
	var rows strings.Builder
	for i, w := range workouts {
		date := "N/A"
		if w.Date != nil {
			date = w.Date.Format("2006-01-02")
		}
		focus := strings.Join(w.FocusAreas, ", ")
		if focus == "" {
			focus = "General"
		}
		rating := string(w.Rating)
		if rating == "" {
			rating = "N/A"
		}
		fmt.Fprintf(&rows, `<tr>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%d</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%d min</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
  <td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td>
</tr>
`, i+1, date, w.DurationMin, html.EscapeString(focus), html.EscapeString(rating))
	}

	section := func(title, body string) string {
		return fmt.Sprintf(`<h2 style="color: #667eea; border-bottom: 2px solid #667eea; padding-bottom: 10px;">%s</h2>
<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <p style="white-space: pre-line;">%s</p>
</div>
`, title, html.EscapeString(body))
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Weekly Progress Report</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
  <h1 style="margin: 0;">🏋️ STAIRS GYM</h1>
  <p style="margin: 10px 0 0 0; font-size: 18px;">Weekly Progress Report</p>
</div>
<div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
`)
	fmt.Fprintf(&b, `<p style="font-size: 16px;">Hi <strong>%s</strong>! 👋</p>
<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #667eea;">
  <p style="margin: 0; color: #666;">📅 Week: <strong>%s</strong> to <strong>%s</strong></p>
</div>
`, html.EscapeString(patientName), rep.WeekStart.Format("2006-01-02"), rep.WeekEnd.Format("2006-01-02"))

	fmt.Fprintf(&b, `<h2 style="color: #667eea; border-bottom: 2px solid #667eea; padding-bottom: 10px;">📊 Your Stats</h2>
<div style="display: flex; gap: 20px; margin: 20px 0;">
  <div style="flex: 1; background: white; padding: 20px; border-radius: 8px; text-align: center;">
    <div style="font-size: 32px; font-weight: bold; color: #667eea;">%d</div>
    <div style="color: #666;">Sessions</div>
  </div>
  <div style="flex: 1; background: white; padding: 20px; border-radius: 8px; text-align: center;">
    <div style="font-size: 32px; font-weight: bold; color: #764ba2;">%d</div>
    <div style="color: #666;">Minutes</div>
  </div>
</div>
`, rep.TotalSessions, rep.TotalMinutes)

	b.WriteString(section("📝 Summary", rep.Summary))
	b.WriteString(section("💪 Key Improvements", textOr(rep.Improvements, "Keep up the great work!")))
	b.WriteString(section("⚠️ Focus Areas", textOr(rep.Concerns, "None - you're doing great!")))
	b.WriteString(section("🎯 Next Week", textOr(rep.Recommendations, "Continue with your current program.")))

	fmt.Fprintf(&b, `<h2 style="color: #667eea; border-bottom: 2px solid #667eea; padding-bottom: 10px;">📋 Workout Details</h2>
<table style="width: 100%%; background: white; border-radius: 8px; overflow: hidden; margin: 20px 0; border-collapse: collapse;">
  <thead>
    <tr style="background: #667eea; color: white;">
      <th style="padding: 12px; text-align: left;">#</th>
      <th style="padding: 12px; text-align: left;">Date</th>
      <th style="padding: 12px; text-align: left;">Duration</th>
      <th style="padding: 12px; text-align: left;">Focus</th>
      <th style="padding: 12px; text-align: left;">Rating</th>
    </tr>
  </thead>
  <tbody>
%s  </tbody>
</table>
`, rows.String())

	b.WriteString(`<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 8px; text-align: center; margin: 30px 0;">
  <p style="margin: 0; font-size: 18px; font-weight: bold;">Keep pushing forward! 💪</p>
  <p style="margin: 10px 0 0 0;">- Your Stairs Gym Team</p>
</div>
<p style="text-align: center; color: #999; font-size: 12px; margin-top: 30px;">
  This is an automated weekly report. If you have questions, please contact your trainer.
</p>
</div>
</body>
</html>
`)

	return b.String()
}

func textOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
