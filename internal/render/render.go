// Package render formats analysis results as Telegram HTML messages.
// Step 1 shows only the verdict; the explanation arrives as a separate
// message behind a button.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/comedolab/comedo/pkg/comedo"
	"github.com/comedolab/comedo/pkg/comedo/classify"
	"github.com/comedolab/comedo/pkg/comedo/policy"
	"github.com/comedolab/comedo/pkg/comedo/risk"

	"github.com/comedolab/comedo/internal/lookup"
)

// Static bot texts.
const (
	Start = `Hi 👋

Send me:
📸 a photo of a beauty product (front and/or back label)
or
✍️ its name (brand + product)

I'll show the risk level and highlight the "suspicious" components in the composition ✨
A detailed breakdown and tips are one button away 📘`

	Help = `How to use 👇

1) Send a photo or the product name
2) The first reply shows:
   🟢🟡🔴 the risk level
   ⚠️ what in the composition may clog pores (with positions)
   🧾 the full composition with marks

Then you can press:
📘 "Explanation and tips" — and a second reply arrives (why, and how to use it safely).`

	About = `About this bot 🤖

Comedo helps estimate the pore-clogging risk of a cosmetic product from its composition.

📌 The first reply is the result only.
📘 Explanation and tips come as a separate button.

Note: this is not medical advice.`

	ProcessingPhoto   = "📸 One second… taking a look ✨"
	ProcessingText    = "🔎 One second… looking into it ✨"
	ProcessingExplain = "📘 Preparing the explanation and tips…"
	ErrGeneral        = "Oops, that didn't work. Please try again 🙏"
	ErrEmpty          = "Send a photo or a product name 🙂"
	ErrExplain        = "😕 Couldn't build the explanation. Please try again."
	ButtonStale       = "This button has expired 🙈"
	ButtonBusy        = "Already working on it ✨"
	ExplainButton     = "📘 Explanation and tips"
)

var riskLabels = map[risk.Level]string{
	risk.High:   "🔴 <b>HIGH RISK</b>",
	risk.Medium: "🟡 <b>MEDIUM RISK</b>",
	risk.Low:    "🟢 <b>LOW RISK</b>",
	risk.None:   "⚪️ <b>NO RISK FOUND</b>",
}

var riskShort = map[risk.Level]string{
	risk.High:   "🔴 high",
	risk.Medium: "🟡 medium",
	risk.Low:    "🟢 low",
	risk.None:   "⚪️ not found",
}

// RiskLabel returns the headline label for a risk level.
func RiskLabel(l risk.Level) string {
	if label, ok := riskLabels[l]; ok {
		return label
	}
	return riskLabels[risk.None]
}

// RiskShort returns the inline short form for a risk level.
func RiskShort(l risk.Level) string {
	if label, ok := riskShort[l]; ok {
		return label
	}
	return riskShort[risk.None]
}

// Mark returns the per-ingredient marker.
func Mark(rec classify.Record) string {
	switch {
	case rec.Hard:
		return "🔴"
	case rec.Conditional && rec.EarlyConditional:
		return "🟡⚡"
	case rec.Conditional:
		return "🟡"
	}
	return "⚪"
}

// Step1 builds the first reply: risk, name, flagged components, the full
// marked composition and the source link when one survived sanitation.
func Step1(productName string, report comedo.Report) string {
	name := productName
	if name == "" {
		name = "Product"
	}

	var lines []string

	lines = append(lines, RiskLabel(report.Risk), "")
	lines = append(lines, fmt.Sprintf("🧴 <b>%s</b>", html.EscapeString(name)), "", "")

	lines = append(lines, "⚠️ <b>What in the composition may clog pores</b>")
	found := false
	for _, rec := range report.Ingredients {
		if !rec.Flagged() {
			continue
		}
		found = true
		lines = append(lines, fmt.Sprintf("%s %s — %d", Mark(rec), html.EscapeString(rec.Name), rec.Position))
	}
	if !found {
		lines = append(lines, "✨ Nothing obviously \"suspicious\" in this composition.")
	}
	lines = append(lines, "")

	lines = append(lines, "🧾 <b>Composition</b>")
	for _, rec := range report.Ingredients {
		lines = append(lines, fmt.Sprintf("%s %d. %s", Mark(rec), rec.Position, html.EscapeString(rec.Name)))
	}
	lines = append(lines, "")

	if report.HasSourceURL {
		lines = append(lines, "🔗 <b>Source</b>")
		lines = append(lines, fmt.Sprintf(`<a href="%s">%s</a>`, report.SourceURL, html.EscapeString(name)))
		lines = append(lines, "")
	}

	lines = append(lines, "🧷 <i>Marks:</i> 🔴 high risk · 🟡⚡ conditional (early in the list) · 🟡 conditional · ⚪ everything else")
	lines = append(lines, "")
	lines = append(lines, "👇 Want to know why, and how to use it safely — press 📘")

	return strings.Join(lines, "\n")
}

// NoINCI builds the reply for a product whose composition could not be read.
func NoINCI(productName string) string {
	name := productName
	if name == "" {
		name = "Product"
	}
	lines := []string{
		"😕 <b>Couldn't read the composition</b>",
		"",
		fmt.Sprintf("🧴 <b>%s</b>", html.EscapeString(name)),
		"",
		"What might help 👇",
		"• a photo in good light",
		"• the back label up close (so the text is readable)",
		"• or send the exact product name as text ✍️",
	}
	return strings.Join(lines, "\n")
}

// Step2 builds the explanation message from the step-2 lookup payload. The
// policy supplies the per-term cutoffs used to mark early conditional notes.
func Step2(expl lookup.Explanation, productName string, level risk.Level, p *policy.Policy) string {
	var lines []string

	lines = append(lines, "📘 <b>Explanation and tips</b>")
	if productName != "" {
		lines = append(lines, fmt.Sprintf("🧴 <b>%s</b>", html.EscapeString(productName)))
	}
	if level != "" {
		lines = append(lines, fmt.Sprintf("🏷️ Risk: <b>%s</b>", RiskShort(level)))
	}
	lines = append(lines, "")

	if expl.Summary != "" {
		lines = append(lines, "🗣️ <b>What this means</b>", expl.Summary, "")
	}

	if len(expl.Notes) > 0 {
		lines = append(lines, "🧪 <b>What to watch</b>")
		notes := expl.Notes
		if len(notes) > 12 {
			notes = notes[:12]
		}
		for _, note := range notes {
			if note.Name == "" {
				continue
			}
			rec := classify.Record{
				Hard:        note.Type == "hard",
				Conditional: note.Type == "conditional",
			}
			if rec.Conditional && note.Position > 0 {
				if cutoff := p.CutoffFor(note.Name); cutoff > 0 && note.Position <= cutoff {
					rec.EarlyConditional = true
				}
			}
			head := fmt.Sprintf("%s <b>%s</b>", Mark(rec), html.EscapeString(note.Name))
			if note.Position > 0 {
				head += fmt.Sprintf(" <i>(#%d)</i>", note.Position)
			}
			lines = append(lines, head)
			if note.Note != "" {
				lines = append(lines, "— "+note.Note)
			}
			lines = append(lines, "")
		}
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, "")
	}

	if expl.OverallNotes != "" {
		lines = append(lines, "✨ <b>Overall</b>", expl.OverallNotes, "")
	}

	if len(expl.Recommendations) > 0 {
		lines = append(lines, "✅ <b>How to use it with more peace of mind</b>")
		recs := expl.Recommendations
		if len(recs) > 10 {
			recs = recs[:10]
		}
		for _, rec := range recs {
			lines = append(lines, "☑️ "+rec)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "🤍 Reminder: this is not a diagnosis or a treatment — just a convenient look at the composition.")

	out := strings.TrimSpace(strings.Join(lines, "\n"))
	if out == "" {
		return ErrExplain
	}
	return out
}

// BaseList renders the fixed comedogen policy for the /base command.
func BaseList(p *policy.Policy) string {
	var lines []string
	lines = append(lines, "📚 <b>/base — components this bot marks</b>", "")

	lines = append(lines, "🔴 <b>Hard</b>")
	for _, term := range p.ListHard() {
		lines = append(lines, "• "+term)
	}
	lines = append(lines, "")

	lines = append(lines, "🟡 <b>Conditional</b> (early position matters)")
	for _, ct := range p.ListConditional() {
		lines = append(lines, fmt.Sprintf("• %s (≤ %d)", ct.Term.Text, ct.Cutoff))
	}

	return strings.Join(lines, "\n")
}
