package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stairs/gym-reports/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GenAISummarizer produces narratives with Google's Gemini API. Every
// generation failure degrades to the deterministic fallback, so a broken or
// rate-limited model never blocks report creation.
type GenAISummarizer struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGenAISummarizer creates a Gemini-backed summarizer.
func NewGenAISummarizer(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GenAISummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAISummarizer{client: client, model: model, logger: logger}, nil
}

// Weekly generates the weekly narrative, falling back to the metric-based
// summary on any model or parse failure.
func (s *GenAISummarizer) Weekly(ctx context.Context, facts WeeklyFacts) (WeeklySummary, error) {
	if facts.Metrics.TotalSessions == 0 {
		return FallbackWeekly(facts), nil
	}

	raw, err := s.generate(ctx, weeklySystemPrompt, buildWeeklyPrompt(facts), 600)
	if err != nil {
		s.logger.Warn("weekly summary generation failed, using fallback",
			zap.String("patient", facts.PatientName), zap.Error(err))
		return FallbackWeekly(facts), nil
	}

	var out WeeklySummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("weekly summary response was not valid JSON, using fallback",
			zap.String("patient", facts.PatientName), zap.Error(err))
		return FallbackWeekly(facts), nil
	}
	return out, nil
}

// Monthly generates the monthly narrative with the same degradation rules.
func (s *GenAISummarizer) Monthly(ctx context.Context, facts MonthlyFacts) (MonthlySummary, error) {
	if facts.Metrics.TotalSessions == 0 {
		return MonthlySummary{
			Summary:         fmt.Sprintf("No workout sessions recorded for %s this month.", facts.PatientName),
			Achievements:    "N/A",
			Challenges:      "No activity this month",
			NextMonthFocus:  "Schedule regular training sessions",
			TrainerComments: "Need to establish consistent training schedule",
		}, nil
	}

	raw, err := s.generate(ctx, monthlySystemPrompt, buildMonthlyPrompt(facts), 1000)
	if err != nil {
		s.logger.Warn("monthly summary generation failed, using fallback",
			zap.String("patient", facts.PatientName), zap.Error(err))
		return FallbackMonthly(facts), nil
	}

	var out MonthlySummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("monthly summary response was not valid JSON, using fallback",
			zap.String("patient", facts.PatientName), zap.Error(err))
		return FallbackMonthly(facts), nil
	}
	return out, nil
}

func (s *GenAISummarizer) generate(ctx context.Context, system, prompt string, maxTokens int32) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   maxTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

const weeklySystemPrompt = "You are a fitness coach. Return only valid JSON with string values. Include assessment data when available."

const monthlySystemPrompt = "You are a professional fitness coach writing monthly progress reports. Return only valid JSON with string values."

func buildWeeklyPrompt(facts WeeklyFacts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a comprehensive weekly summary for %s.\n\n", facts.PatientName)
	fmt.Fprintf(&b, "WEEKLY METRICS:\n- Total Sessions: %d\n- Total Training Time: %d minutes\n\n",
		facts.Metrics.TotalSessions, facts.Metrics.TotalMinutes)

	if a := facts.Assessment; a != nil {
		b.WriteString("ASSESSMENT CONDUCTED THIS WEEK:\n")
		if a.Date != nil {
			fmt.Fprintf(&b, "Date: %s\n", a.Date.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "- Strength Score: %s/100\n", scoreOrDash(a.StrengthScore))
		fmt.Fprintf(&b, "- Mobility Score: %s/100\n", scoreOrDash(a.MobilityScore))
		fmt.Fprintf(&b, "- Balance Score: %s/100\n", scoreOrDash(a.BalanceScore))
		fmt.Fprintf(&b, "- Flexibility Score: %s/100\n", scoreOrDash(a.FlexibilityScore))
		fmt.Fprintf(&b, "- Goals Set: %s\n", orDefault(a.Goals, "Not specified"))
		fmt.Fprintf(&b, "- Program Suggested: %s\n", orDefault(a.Program, "Not specified"))
		fmt.Fprintf(&b, "- Trainer Notes: %s\n\n", orDefault(a.TrainerNotes, "None"))
	}

	b.WriteString("WORKOUT SESSIONS:\n")
	if len(facts.Workouts) == 0 {
		b.WriteString("No workouts this week\n")
	}
	for i, w := range facts.Workouts {
		date := ""
		if w.Date != nil {
			date = w.Date.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "Session %d - %s:\n", i+1, date)
		fmt.Fprintf(&b, "- Duration: %d minutes\n", w.DurationMin)
		fmt.Fprintf(&b, "- Exercises: %s\n", orDefault(w.Exercises, "Not specified"))
		fmt.Fprintf(&b, "- Trainer's Observations: %s\n", orDefault(w.Noticed, "None"))
		fmt.Fprintf(&b, "- Progress Noted: %s\n", orDefault(w.Improving, "None"))
		fmt.Fprintf(&b, "- Concerns: %s\n", orDefault(w.Concerns, "None"))
		fmt.Fprintf(&b, "- Session Rating: %s\n\n", string(w.Rating))
	}

	b.WriteString("Return JSON with keys: summary, improvements, concerns, recommendations.\n")
	if facts.Assessment != nil {
		b.WriteString("Important: Include assessment results in the summary and recommendations.\n")
	}
	b.WriteString("Each value should be a STRING (not array). Be motivating and specific.")

	return b.String()
}

func buildMonthlyPrompt(facts MonthlyFacts) string {
	var b strings.Builder

	avgDuration := 0.0
	if facts.Metrics.TotalSessions > 0 {
		avgDuration = float64(facts.Metrics.TotalMinutes) / float64(facts.Metrics.TotalSessions)
	}

	fmt.Fprintf(&b, "Generate a comprehensive monthly fitness summary for %s.\n\n", facts.PatientName)
	fmt.Fprintf(&b, "MONTHLY METRICS:\n- Total Sessions: %d\n- Total Training Time: %d minutes\n- Average Session: %.1f minutes\n\n",
		facts.Metrics.TotalSessions, facts.Metrics.TotalMinutes, avgDuration)

	b.WriteString("WEEKLY SUMMARIES:\n")
	if len(facts.WeeklySummaries) == 0 {
		b.WriteString("No weekly summaries available\n")
	}
	for i, wr := range facts.WeeklySummaries {
		fmt.Fprintf(&b, "Week %d: %d sessions - %s\n", i+1, wr.TotalSessions, clip(wr.Summary, 100))
	}

	b.WriteString("\nCURRENT MEASUREMENTS:\n")
	b.WriteString(formatMeasurements(facts.Measurements))

	b.WriteString(`
OVERALL OBSERVATIONS:
Analyze all the data and provide:
1. A motivating monthly summary (3-4 sentences)
2. Major achievements this month (bullet points)
3. Challenges faced (or "None" if all went well)
4. Focus areas for next month (2-3 specific recommendations)
5. Trainer comments (professional assessment)

Return JSON with keys: summary, achievements, challenges, next_month_focus, trainer_comments
Each value should be a STRING (not array). Use newlines for bullet points in strings.`)

	return b.String()
}

func formatMeasurements(m domain.Measurements) string {
	var lines []string
	add := func(label, unit string, v *float64) {
		if v != nil {
			lines = append(lines, fmt.Sprintf("- %s: %g %s", label, *v, unit))
		}
	}
	add("Weight", "kg", m.WeightKg)
	add("Height", "cm", m.HeightCm)
	add("Chest", "cm", m.ChestCm)
	add("Waist", "cm", m.WaistCm)
	add("Hips", "cm", m.HipsCm)
	add("Thigh", "cm", m.ThighCm)
	add("Arm", "cm", m.ArmCm)
	if len(lines) == 0 {
		return "No measurements recorded\n"
	}
	return strings.Join(lines, "\n") + "\n"
}

func scoreOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
