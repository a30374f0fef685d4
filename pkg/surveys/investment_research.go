// Package surveys ships the built-in survey definitions and their
// survey-specific exports.
package surveys

import "github.com/goliatone/go-surveyform/pkg/model"

// InvestmentResearchID identifies the built-in investment research survey.
const InvestmentResearchID = "investment_research"

// SectionParticipant is the characterization section title; the analytics
// export treats it specially.
const SectionParticipant = "Participant Characterization (referring to you, not EasyAI)"

// SectionAdditionalComments holds the optional free-form wrap-up questions.
const SectionAdditionalComments = "Additional Comments (Optional)"

// InvestmentResearch returns the investment decision-making research survey:
// participant characterization followed by one likert plus free-text pair per
// research dimension, closing with optional comments.
func InvestmentResearch() model.FormSpec {
	return model.FormSpec{
		ID:    InvestmentResearchID,
		Title: "Investment Decision-Making Research Survey",
		Sections: []model.Section{
			{
				Title: SectionParticipant,
				Fields: []model.Field{
					{
						Key:      "investment_experience_years",
						Label:    "How many years of investment experience do you have?",
						Kind:     model.FieldKindSelect,
						Required: true,
						Options: []string{"", "Less than 1 year", "1-3 years", "3-5 years",
							"5-10 years", "10-15 years", "More than 15 years"},
						Help: "Please indicate your total duration of active investment participation",
					},
					{
						Key:      "investment_proficiency",
						Label:    "Investment Proficiency Self-Assessment",
						Kind:     model.FieldKindSelect,
						Required: true,
						Options: []string{"",
							"Nascent (Limited knowledge, learning fundamentals)",
							"Developing (Growing competence, understanding core concepts)",
							"Competent (Solid understanding, independent decision-making)",
							"Proficient (Advanced knowledge, sophisticated strategies)",
							"Expert (Comprehensive mastery, professional-level expertise)"},
						Help: "Please assess your current investment knowledge and decision-making capability",
					},
					{
						Key:      "investment_frequency",
						Label:    "What is your investment decision frequency?",
						Kind:     model.FieldKindSelect,
						Required: true,
						Options: []string{"", "Daily", "Weekly", "Monthly",
							"Quarterly", "Annually", "Rarely"},
						Help: "How often do you typically make investment decisions or portfolio adjustments?",
					},
					{
						Key:      "portfolio_complexity",
						Label:    "Portfolio Complexity",
						Kind:     model.FieldKindSelect,
						Required: true,
						Options: []string{"",
							"Single asset class (e.g., stocks only)",
							"Limited diversification (2-3 asset classes)",
							"Moderate diversification (4-5 asset classes)",
							"Extensive diversification (6+ asset classes)",
							"Complex strategies (derivatives, alternatives, etc.)"},
						Help: "Please characterize the complexity of your investment portfolio",
					},
				},
			},
			{
				Title: "Prescriptive Knowledge",
				Fields: []model.Field{
					model.LikertField("prescriptive_structured",
						"Did you see structured recommendations (including timely data, risk indicators, etc.) that guided your decision-making?",
						true, model.AgreementScale,
						"1 = Completely unstructured recommendations; 5 = Extremely clear, well-structured recommendations with disclaimers"),
					{
						Key:   "prescriptive_missing",
						Label: "Describe any missing or unclear elements in the recommendations.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Human vs. Non-Human Actors",
				Fields: []model.Field{
					model.LikertField("human_explanations",
						"Did the system provide meaningful explanations for its recommendations and clearly indicate when human intervention might be required?",
						true, model.AgreementScale,
						"1 = Explanations absent or confusing; 5 = Very clear, transparent reasoning and role delineation"),
					{
						Key:   "human_difficulties",
						Label: "Mention any difficulties in understanding or trusting the system's explanations.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Complexity and Decomposition",
				Fields: []model.Field{
					model.LikertField("complexity_components",
						"Were you aware of the different components (risk profiling, data retrieval, disclaimers) used to generate advice?",
						true, model.AgreementScale,
						"1 = No clear breakdown of how decisions were made; 5 = Very transparent breakdown of multiple system components"),
					{
						Key:   "complexity_improvements",
						Label: "Suggest improvements for additional clarity or decomposition.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Types of Causality",
				Fields: []model.Field{
					model.LikertField("causality_differentiation",
						"Did the system differentiate between deterministic data (e.g., Piotroski scores) and probabilistic/subjective factors (e.g., sentiment)?",
						true, model.AgreementScale,
						"1 = No clear distinction; 5 = Very clear, helpful distinction between certain and uncertain data"),
					{
						Key:   "causality_confusion",
						Label: `Note any confusion about which factors were "fixed" vs. "variable."`,
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Mechanisms for Goal Achievement",
				Fields: []model.Field{
					model.LikertField("mechanisms_verification",
						"Could you verify the advice (e.g., underlying data sources, or rationales)?",
						true, model.AgreementScale,
						"1 = System gave no verification channels; 5 = System provided extensive verification tools and disclaimers"),
					{
						Key:   "mechanisms_improvements",
						Label: "Propose improvements to disclaimers, data presentation, or verification.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Justificatory Knowledge",
				Fields: []model.Field{
					model.LikertField("justification_metrics",
						"Did the system justify the financial metrics it used (e.g., Piotroski F-score) and explain and substantiate why they matter for investment decisions?",
						true, model.AgreementScale,
						"1 = No justification of metrics; 5 = Clear, robust rationale behind each metric's significance"),
					{
						Key:   "justification_clarifications",
						Label: "Suggest any clarifications or additional theoretical context needed.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Boundary Conditions",
				Fields: []model.Field{
					model.LikertField("boundary_understanding",
						"Did you understand when and where AVA's recommendations were appropriate (e.g., single-stock buy & hold investment philosophy, vs. high frequency trading)?",
						true, model.AgreementScale,
						"1 = Boundaries not explained; 5 = Extremely clear explanations and investment philosophies"),
					{
						Key:   "boundary_features",
						Label: "Indicate any features or capabilities that would improve your investment research experience.",
						Kind:  model.FieldKindTextarea,
					},
					{
						Key:   "boundary_misunderstanding",
						Label: "Indicate any ways in which the scope was misunderstood or might be misapplied.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: "Trust",
				Fields: []model.Field{
					model.LikertField("trust_insights",
						"Would you trust insights provided to inform your investment decisions?",
						true, model.TrustScale,
						"1 = Untrustworthy and uninformed; 5 = Trustworthy and informed"),
					{
						Key:   "trust_improvements",
						Label: "Indicate any features or capabilities that would improve your investment research experience.",
						Kind:  model.FieldKindTextarea,
					},
				},
			},
			{
				Title: SectionAdditionalComments,
				Fields: []model.Field{
					{
						Key:   "overall_experience",
						Label: "Please share any additional thoughts about your overall experience with the investment recommendation system.",
						Kind:  model.FieldKindTextarea,
					},
					{
						Key:     "future_participation",
						Label:   "Would you be interested in participating in future research studies?",
						Kind:    model.FieldKindSelect,
						Options: []string{"", "Yes", "No", "Maybe"},
					},
				},
			},
		},
	}
}

// Builtin returns the specs shipped with the module, keyed by id.
func Builtin() map[string]model.FormSpec {
	spec := InvestmentResearch()
	return map[string]model.FormSpec{
		spec.ID: spec,
	}
}
