package chat

import (
	"fmt"
	"strings"

	"github.com/unilabvision/myuni/internal/db/models"
	"github.com/unilabvision/myuni/internal/i18n"
)

// Prompt limits, in characters.
const (
	MaxLessonDescription = 400
	MaxHistoryTurn       = 150
	MaxHistoryTurns      = 2
)

// Turn is one earlier message of the conversation as resent by the client.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LessonContext is the lesson a question refers to.
type LessonContext struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

// NewLessonContext copies the prompt relevant fields of a lesson.
func NewLessonContext(l *models.Lesson) *LessonContext {
	if l == nil {
		return nil
	}

	return &LessonContext{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Type:        l.Type,
		Duration:    l.Duration,
	}
}

var systemInstruction = map[i18n.Lang]string{ //nolint:gochecknoglobals
	i18n.TR: "Sen MyUNI eğitim platformunun yardımcı asistanısın. Öğrencilerin sorularını Türkçe, " +
		"kısa, net ve anlaşılır biçimde yanıtla. Yanıtın en fazla birkaç paragraf olsun. " +
		"Markdown başlık, kalın yazı veya madde işareti kullanma. Kod gerekiyorsa ``` ile çevrili kısa bir örnek ver.",
	i18n.EN: "You are the helpful assistant of the MyUNI learning platform. Answer students' questions in English, " +
		"briefly, clearly and in plain language. Keep the answer to a few paragraphs at most. " +
		"Do not use markdown headings, bold text or bullet lists. If code is needed give a short example fenced with ```.",
}

// BuildPrompt assembles the text sent to the completion service.
func BuildPrompt(lang i18n.Lang, lesson *LessonContext, history []Turn, message string) string {
	var b strings.Builder

	instruction, ok := systemInstruction[lang]
	if !ok {
		instruction = systemInstruction[i18n.TR]
	}

	b.WriteString(instruction)
	b.WriteString("\n\n")

	if lesson != nil {
		if lang == i18n.EN {
			b.WriteString("Lesson context:\n")
			fmt.Fprintf(&b, "Title: %s\n", lesson.Title)
		} else {
			b.WriteString("Ders bilgisi:\n")
			fmt.Fprintf(&b, "Başlık: %s\n", lesson.Title)
		}

		if lesson.Type != "" {
			fmt.Fprintf(&b, "%s: %s\n", label(lang, "Type", "Tür"), lesson.Type)
		}

		if lesson.Duration > 0 {
			fmt.Fprintf(&b, "%s: %d %s\n", label(lang, "Duration", "Süre"), lesson.Duration, label(lang, "minutes", "dakika"))
		}

		if lesson.Description != "" {
			fmt.Fprintf(&b, "%s: %s\n", label(lang, "Description", "Açıklama"),
				truncateRunes(lesson.Description, MaxLessonDescription))
		}

		b.WriteString("\n")
	}

	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}

	if len(history) > 0 {
		b.WriteString(label(lang, "Previous messages:\n", "Önceki mesajlar:\n"))

		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", speaker(lang, turn.Role), truncateRunes(strings.TrimSpace(turn.Content), MaxHistoryTurn))
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s: %s\n%s:", label(lang, "Student", "Öğrenci"), message, label(lang, "Assistant", "Asistan"))

	return b.String()
}

func speaker(lang i18n.Lang, role string) string {
	switch strings.ToLower(role) {
	case "assistant", "model", "bot":
		return label(lang, "Assistant", "Asistan")
	default:
		return label(lang, "Student", "Öğrenci")
	}
}

func label(lang i18n.Lang, en, tr string) string {
	if lang == i18n.EN {
		return en
	}

	return tr
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
