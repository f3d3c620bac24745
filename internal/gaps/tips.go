package gaps

// bucketTips are canned remediation hints keyed by bucket name. The AI
// advisor can replace these with posting-specific wording.
var bucketTips = map[string]map[Status]string{
	"AI / ML": {
		StatusMissing:   "Your resume has no AI/ML language. Add a bullet naming a concrete LLM or ML feature you shipped and its measured impact.",
		StatusNeedsMore: "AI/ML appears only once. Weave model, evaluation, or agent work into a second bullet so it reads as a theme, not a mention.",
	},
	"Seniority": {
		StatusMissing:   "Seniority signals are absent. State your level and scope explicitly: team size led, budget owned, or years in senior roles.",
		StatusNeedsMore: "Reinforce scope: pair your title with the size of the product area or organization you were responsible for.",
	},
	"Domain Fit": {
		StatusMissing:   "The posting's domain keywords never appear. Mirror its platform, API, or B2B vocabulary in your most relevant experience bullet.",
		StatusNeedsMore: "Domain language shows up once. Repeat the posting's core domain terms in your summary so screeners see the overlap immediately.",
	},
	"Industry Verticals": {
		StatusMissing:   "No vertical experience is visible. If you have touched this industry even adjacently, name it in a bullet.",
		StatusNeedsMore: "Mention the vertical again in your headline or summary; a single deep-in-the-page reference is easy to miss.",
	},
}

const genericTip = "Mirror the posting's keywords for this area in a resume bullet with a concrete outcome attached."

func suggestionFor(bucket string, status Status) string {
	if tips, ok := bucketTips[bucket]; ok {
		if tip, ok := tips[status]; ok {
			return tip
		}
	}
	return genericTip
}
