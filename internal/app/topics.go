package app

import "strings"

// Topic is a FAQ category: a fixed pool of suggestion questions plus the
// keywords that pull free-typed text into it. Topics are defined once at
// startup and never mutated; their declared order is the tie-break when a
// message matches more than one topic.
type Topic struct {
	ID       string
	Label    string
	Keywords []string
	Pool     []string
}

// DefaultTopics is the built-in Industrial Training FAQ taxonomy.
func DefaultTopics() []Topic {
	return []Topic{
		{
			ID:       "forms",
			Label:    "Forms & Registration",
			Keywords: []string{"form a", "form b", "sal", "registration", "register"},
			Pool: []string{
				"When is Form A due?",
				"How do I submit Form A?",
				"Who needs to sign my Form A?",
				"What is the SAL form and when do I need it?",
				"Where can I download Form B?",
				"What happens if I miss the Form A deadline?",
			},
		},
		{
			ID:       "deadlines",
			Label:    "Deadlines & Submission",
			Keywords: []string{"deadline", "due date", "submission", "submit", "late"},
			Pool: []string{
				"What are the key deadlines this semester?",
				"Where do I submit my documents?",
				"Can I get an extension on a submission?",
				"What is the penalty for a late submission?",
				"How do I confirm my submission was received?",
				"When does the internship period officially end?",
			},
		},
		{
			ID:       "report",
			Label:    "Logbook & Final Report",
			Keywords: []string{"logbook", "log book", "weekly log", "report", "presentation"},
			Pool: []string{
				"How often do I need to fill in my logbook?",
				"What should the final report contain?",
				"Is there a template for the final report?",
				"Who grades the final report?",
				"Do I need to prepare a final presentation?",
				"How long should the final report be?",
			},
		},
		{
			ID:       "cv",
			Label:    "CV & Application",
			Keywords: []string{"cv", "resume", "cover letter", "interview"},
			Pool: []string{
				"What should I include in my CV?",
				"Can someone review my CV before I apply?",
				"Do I need a cover letter for every application?",
				"How should I prepare for an internship interview?",
				"What format should my CV be in?",
			},
		},
		{
			ID:       "placement",
			Label:    "Company & Placement",
			Keywords: []string{"company", "placement", "internship", "employer", "allowance"},
			Pool: []string{
				"How do I find a company for my internship?",
				"Can I do my internship overseas?",
				"What if my company withdraws the offer?",
				"Is an allowance compulsory for the placement?",
				"Can I change company after starting?",
				"Does the faculty help with placement?",
			},
		},
		{
			ID:       "contact",
			Label:    "Contact & Support",
			Keywords: []string{"contact", "coordinator", "supervisor", "email", "office"},
			Pool: []string{
				"How do I contact the Industrial Training coordinator?",
				"Who is my faculty supervisor?",
				"Where is the Industrial Training office?",
				"What should I do if my supervisor is unreachable?",
				"How do I report a problem at my company?",
			},
		},
	}
}

// DetectTopic returns the id of the first topic, in declared order, with a
// case-insensitive keyword substring match in text. Earlier topics win on
// ambiguous input.
func DetectTopic(topics []Topic, text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, topic := range topics {
		for _, kw := range topic.Keywords {
			if strings.Contains(lowered, strings.ToLower(kw)) {
				return topic.ID, true
			}
		}
	}
	return "", false
}
