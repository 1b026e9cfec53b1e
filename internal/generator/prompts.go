package generator

import (
	"fmt"
	"strings"

	"sermonlens/internal/corpus"
)

// Post length labels accepted by the blog and series generators.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// blogWordTargets maps a length label to the target range given to the
// generation service.
var blogWordTargets = map[string]string{
	LengthShort:  "1000-1500",
	LengthMedium: "1500-2500",
	LengthLong:   "2500-3500",
}

// seriesWordTargets maps a length label to the per-post word target.
var seriesWordTargets = map[string]int{
	LengthShort:  1500,
	LengthMedium: 2500,
	LengthLong:   3500,
}

// surveyPrompt asks for a quick first-impression assessment from a handful
// of random samples.
func surveyPrompt(samples []corpus.Record) string {
	var b strings.Builder
	b.WriteString("Analyze these sermon transcript samples:\n")
	for i, sample := range samples {
		text := sample.Text
		if len(text) > 2000 {
			text = text[:2000]
		}
		fmt.Fprintf(&b, "\n### Sample %d: %s\n%s\n", i+1, sample.Title, text)
	}

	b.WriteString(`
CRITICAL: When citing evidence, QUOTE actual phrases (not sample numbers). User cannot see "Sample 1, Sample 2" etc.

Provide:
1. THEOLOGICAL TRADITION
2. CONCERNS (quote actual phrases)
3. STRENGTHS (quote actual phrases)
4. RED FLAGS (quote actual phrases)
5. KEY THEMES (quote actual phrases)

Be specific and quote evidence.`)

	return b.String()
}

// evaluationPrompt asks for the full theological assessment of a deep
// analysis summary.
func evaluationPrompt(analysisSummary string) string {
	return analysisSummary + `

CRITICAL INSTRUCTIONS FOR THEOLOGICAL ASSESSMENT:

**EVIDENCE RULES:**
1. NEVER reference "Sample 1" or "Sample 2" - the user cannot see sample numbers
2. When citing evidence, QUOTE the actual phrase and provide Context Inspector search term
3. Format: "The phrase '[exact quote]' appears - verify context with: Search '[search term]'"
4. Be SPECIFIC - vague references are useless

**ASSESSMENT STRUCTURE:**

## 1. TRADITION
Identify theological tradition (Reformed, Pentecostal, Word of Faith, etc.)

## 2. CONCERNS (Evidence-Based)
For each concern:
- Quote the actual concerning phrase
- Cite frequency from data
- Severity: LOW/MEDIUM/HIGH
- Action: Context Inspector search term

## 3. STRENGTHS (Evidence-Based)
Cite frequencies that show orthodox markers:
- Christ-centered language (Jesus, Christ mentions)
- Gospel essentials (sin, cross, grace, salvation)
- Practical ministry evidence

## 4. RECOMMENDATION
- Overall verdict
- Safe for what?
- Watch for what?
- Next steps with specific Context Inspector searches`
}

// themeComparisonPrompt asks for a structured comparison of two ministries
// on one theme, from sampled excerpts.
func themeComparisonPrompt(theme, nameA, nameB string, excerptsA, excerptsB []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare how these two teachers/ministries approach %q:\n\n", theme)

	fmt.Fprintf(&b, "%s - Sample teachings:\n", nameA)
	for _, e := range capExcerpts(excerptsA) {
		fmt.Fprintf(&b, "• %s\n", e)
	}

	fmt.Fprintf(&b, "\n%s - Sample teachings:\n", nameB)
	for _, e := range capExcerpts(excerptsB) {
		fmt.Fprintf(&b, "• %s\n", e)
	}

	b.WriteString(`
Provide a structured comparison (300-400 words):

1. **Main Theological Differences**: What are the core differences in their teaching on this theme?

2. **Scripture Usage**: How do they use the Bible differently on this topic?

3. **Practical Application**: How do their teachings apply to believers differently?

4. **Red Flags** (if any): Any concerning theological issues?

5. **Verdict**: Which approach is more biblically sound and why?

Be objective, fair, and cite specific concerns.`)

	return b.String()
}

// capExcerpts keeps at most three excerpts of at most 400 characters each.
func capExcerpts(excerpts []string) []string {
	if len(excerpts) > 3 {
		excerpts = excerpts[:3]
	}
	capped := make([]string, 0, len(excerpts))
	for _, e := range excerpts {
		if len(e) > 400 {
			e = e[:400]
		}
		capped = append(capped, e)
	}
	return capped
}

// askPrompt asks a question against assembled transcript context.
func askPrompt(question, transcriptContext string) string {
	return fmt.Sprintf(`Based on the following sermon transcripts, answer this question:

**QUESTION:** %s

**RELEVANT TRANSCRIPTS:**
%s

INSTRUCTIONS:
1. Answer the question directly with specific evidence
2. QUOTE actual phrases from the transcripts (use "...")
3. Note what the teacher DOES say and what they DON'T say
4. If the transcripts don't address the question, say so
5. Identify any concerning teachings with quoted evidence
6. Keep answer focused and evidence-based

Provide a clear, well-organized answer with quoted evidence.`, question, transcriptContext)
}

// blogPrompt asks for one blog post grounded on extracted excerpts.
func blogPrompt(topic, audience, wordTarget, sourceContent string) string {
	return fmt.Sprintf(`Write a professional, compassionate blog post for a %s audience.

TOPIC: %s

TARGET LENGTH: %s words

SOURCE CONTENT (from sermon database):
%s

REQUIREMENTS:
1. Write in a warm, hopeful, recovery-focused tone
2. Use the source content for theological grounding, but write in your own words
3. Include:
   - Compelling introduction
   - Clear sections with ## and ### headers
   - Biblical references where appropriate
   - Practical application
   - Hopeful conclusion
4. Target %s audience specifically
5. Be substantive and helpful, not just inspirational fluff
6. Output clean Markdown (headers, paragraphs, lists, blockquotes only - no HTML)

Write the blog post now:`, strings.ToLower(audience), topic, wordTarget, sourceContent, strings.ToLower(audience))
}

// outlinePrompt asks for a multi-post series outline.
func outlinePrompt(topic, audience, style, postLength string, numPosts int) string {
	return fmt.Sprintf(`Create an outline for a %d-post blog series on %q for a %s audience.

Series Style: %s
Post Length: %s

Provide:
1. Series title (compelling, clear)
2. Series description (2-3 sentences)
3. %d post titles that flow logically
4. Brief description of what each post covers
5. How the series builds/progresses

Make it practical, hope-filled, and theologically sound.`,
		numPosts, topic, strings.ToLower(audience), style, postLength, numPosts)
}

// seriesPostPrompt asks for post postNum of numPosts, with progressive
// framing: the first post introduces, middle posts build, the last concludes.
func seriesPostPrompt(topic, audience, style string, postNum, numPosts, wordTarget int, sourceContext string) string {
	framing := "build on previous posts"
	closing := "Transition to next post"
	if postNum == 1 {
		framing = "introduce the topic"
	}
	if postNum == numPosts {
		framing = "conclude the series"
		closing = "Powerful series conclusion"
	}

	return fmt.Sprintf(`Write Post %d of %d in a series on %q.

TARGET AUDIENCE: %s
SERIES STYLE: %s
TARGET LENGTH: %d words

SOURCE MATERIAL (Complete Sermons):
%s

REQUIREMENTS:
1. This is post %d of %d - %s
2. Use the complete sermon content to understand the full message arc
3. Write in a warm, hopeful, %s tone
4. Include:
   - Compelling introduction
   - Clear ## and ### section headers
   - Biblical references
   - Practical application
   - %s
5. Output clean Markdown (headers, paragraphs, lists, blockquotes only - no HTML)
6. Authentically reflect the source material's theology and tone

Write Post %d:`,
		postNum, numPosts, topic, audience, style, wordTarget, sourceContext,
		postNum, numPosts, framing, strings.ToLower(audience), closing, postNum)
}

// devotionalsPrompt asks for ten devotionals in the delimiter protocol that
// ParseDevotionals understands.
func devotionalsPrompt(sampleContent, topic, sourceName string) string {
	if len(sampleContent) > 40000 {
		sampleContent = sampleContent[:40000]
	}

	return fmt.Sprintf(`You are creating 10 daily devotionals based on content from %s.

TOPIC: %s

SOURCE CONTENT:
%s

Generate exactly 10 devotionals following this structure:

FORMAT FOR EACH DEVOTIONAL:
---DEVOTIONAL START---
TITLE: [Engaging 3-8 word title]

NARRATIVE:
[2-3 paragraphs of teaching/reflection, 150-200 words total. Make it personal, practical, and encouraging. Draw from the source content but write in a devotional style.]

KEY SCRIPTURES:
- [Scripture reference 1 with brief context]
- [Scripture reference 2 with brief context]
- [Scripture reference 3 with brief context]
---DEVOTIONAL END---

REQUIREMENTS:
1. Each devotional should be self-contained but part of a 10-day journey
2. Vary the topics while staying within the overall theme
3. Make narratives personal and practical
4. Include 3 scripture references per devotional
5. Write in an encouraging, accessible tone
6. Draw genuine insights from the source material

Generate all 10 devotionals now, numbered 1-10.`, sourceName, topic, sampleContent)
}
