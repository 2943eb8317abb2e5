package registry

// Builtin frameworks: a compact cross-domain legal corpus covering the
// foundational level-1 principles plus the civil, criminal, constitutional,
// administrative, labour, environmental, construction and international
// frameworks. Loaded through LoadBuiltin; file-based frameworks layer on
// top or replace it entirely.

// LoadBuiltin returns a registry populated with the builtin corpus.
func LoadBuiltin() (*Registry, error) {
	reg := New()
	for _, f := range Builtin() {
		if err := reg.AddFramework(f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Builtin returns the builtin framework definitions.
func Builtin() []Framework {
	return []Framework{
		foundational(),
		civilFramework(),
		criminalFramework(),
		constitutionalFramework(),
		administrativeFramework(),
		labourFramework(),
		environmentalFramework(),
		constructionFramework(),
		internationalFramework(),
	}
}

// ============================================================================
// LEVEL 1 - FOUNDATIONAL PRINCIPLES
// ============================================================================

func foundational() Framework {
	return Framework{
		ID:      "lv1",
		Name:    "Foundational Principles",
		Domains: []string{"contract", "delict", "criminal", "constitutional", "administrative", "labour", "environmental", "construction", "international"},
		Principles: []Principle{
			{
				ID:          "pacta-sunt-servanda",
				Name:        "Pacta sunt servanda",
				Description: "Agreements must be kept.",
				Domains:     []string{"contract", "international"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "nullum-crimen-sine-lege",
				Name:        "Nullum crimen sine lege",
				Description: "No crime without a pre-existing law.",
				Domains:     []string{"criminal", "constitutional"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "audi-alteram-partem",
				Name:        "Audi alteram partem",
				Description: "Hear the other side before deciding.",
				Domains:     []string{"administrative", "constitutional", "labour"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "neminem-laedere",
				Name:        "Neminem laedere",
				Description: "Injure no one; the root of delictual liability.",
				Domains:     []string{"delict"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "good-faith",
				Name:        "Good faith",
				Description: "Parties must act honestly in legal dealings.",
				Domains:     []string{"contract", "labour", "construction"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "proportionality",
				Name:        "Proportionality",
				Description: "State action must be proportionate to its aim.",
				Domains:     []string{"constitutional", "administrative", "environmental"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "rule-of-law",
				Name:        "Rule of law",
				Description: "All power is exercised under and limited by law.",
				Domains:     []string{"constitutional", "administrative"},
				Level:       1,
				Confidence:  1.0,
			},
			{
				ID:          "polluter-pays",
				Name:        "Polluter pays",
				Description: "Environmental harm is internalized by its causer.",
				Domains:     []string{"environmental"},
				Level:       1,
				Confidence:  0.9,
			},
		},
	}
}

// ============================================================================
// LEVEL 2+ - DOMAIN FRAMEWORKS
// ============================================================================

func civilFramework() Framework {
	return Framework{
		ID:      "civ",
		Name:    "Civil Law",
		Domains: []string{"contract", "delict", "property"},
		Rules: []Rule{
			{
				ID:            "contract-valid?",
				Name:          "Contract validity",
				Description:   "A contract exists when offer, acceptance and intention coincide.",
				Domain:        "contract",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"pacta-sunt-servanda", "good-faith"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "offer", Equals: true},
					{Attribute: "acceptance", Equals: true},
					{Attribute: "intention_to_be_bound", Equals: true, Default: true},
					{Attribute: "capacity", Equals: true, Default: true},
				},
				Relationships: []Relationship{
					{Target: "breach-of-contract?", Name: "enables", Strength: 0.9},
				},
			},
			{
				ID:            "breach-of-contract?",
				Name:          "Breach of contract",
				Domain:        "contract",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"contract-valid?"},
				Requires:      []string{"contract-valid?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "performance_due", Equals: true},
					{Attribute: "performed", Equals: false, Default: false},
				},
				Relationships: []Relationship{
					{Target: "contractual-damages?", Name: "enables", Strength: 0.85},
				},
			},
			{
				ID:            "contractual-damages?",
				Name:          "Contractual damages",
				Domain:        "contract",
				Level:         4,
				InferenceType: "deductive",
				DerivedFrom:   []string{"breach-of-contract?"},
				Requires:      []string{"breach-of-contract?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "loss_suffered", Equals: true},
					{Attribute: "causation", Equals: true, Default: true},
				},
			},
			{
				ID:            "delictual-liability?",
				Name:          "Delictual liability",
				Description:   "Wrongful, culpable conduct causing loss.",
				Domain:        "delict",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"neminem-laedere"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "wrongful_conduct", Equals: true},
					{Attribute: "fault", Equals: true},
					{Attribute: "causation", Equals: true},
					{Attribute: "loss_suffered", Equals: true},
				},
				Relationships: []Relationship{
					{Target: "contractual-damages?", Name: "parallels", Strength: 0.6, InferenceType: "analogical"},
				},
			},
			{
				ID:            "ownership-transfer?",
				Name:          "Transfer of ownership",
				Domain:        "property",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"pacta-sunt-servanda"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "delivery", Equals: true},
					{Attribute: "intention_to_transfer", Equals: true, Default: true},
					{Attribute: "owner_capacity", Equals: true, Default: true},
				},
			},
		},
	}
}

func criminalFramework() Framework {
	return Framework{
		ID:      "cri",
		Name:    "Criminal Law",
		Domains: []string{"criminal"},
		Rules: []Rule{
			{
				ID:            "actus-reus?",
				Name:          "Actus reus",
				Description:   "A voluntary unlawful act.",
				Domain:        "criminal",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"nullum-crimen-sine-lege"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "act_committed", Equals: true},
					{Attribute: "voluntary", Equals: true, Default: true},
					{Attribute: "unlawful", Equals: true},
				},
			},
			{
				ID:            "mens-rea?",
				Name:          "Mens rea",
				Description:   "Guilty mind: intention or negligence.",
				Domain:        "criminal",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"nullum-crimen-sine-lege"},
				Combine:       "any",
				Conditions: []Condition{
					{Attribute: "intention", Equals: true},
					{Attribute: "negligence", Equals: true},
				},
			},
			{
				ID:            "murder?",
				Name:          "Murder",
				Description:   "Unlawful, intentional killing of another person.",
				Domain:        "criminal",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"actus-reus?", "mens-rea?"},
				Requires:      []string{"actus-reus?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "killing_of_person", Equals: true},
					{Attribute: "intention_to_kill", Equals: true},
				},
				Relationships: []Relationship{
					{Target: "culpable-homicide?", Name: "lesser_included", Strength: 0.8},
				},
			},
			{
				ID:            "unlawful-killing-with-intent?",
				Name:          "Elements of unlawful killing with intent",
				Description:   "The bare elements of murder stated over a fact pattern: an unlawful killing of a human being, intended and caused by the accused.",
				Domain:        "criminal",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"nullum-crimen-sine-lege"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "unlawful_killing", Equals: true},
					{Attribute: "victim_human_being", Equals: true},
					{Attribute: "intention_to_kill", Equals: true},
					{Attribute: "causation", Equals: true},
				},
			},
			{
				ID:            "culpable-homicide?",
				Name:          "Culpable homicide",
				Description:   "Unlawful negligent killing of another person.",
				Domain:        "criminal",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"actus-reus?", "mens-rea?"},
				Requires:      []string{"actus-reus?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "killing_of_person", Equals: true},
					{Attribute: "negligence", Equals: true},
					{Attribute: "intention_to_kill", Equals: false, Default: false},
				},
			},
			{
				ID:            "theft?",
				Name:          "Theft",
				Domain:        "criminal",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"actus-reus?", "mens-rea?"},
				Requires:      []string{"actus-reus?", "mens-rea?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "appropriation", Equals: true},
					{Attribute: "property_of_another", Equals: true},
					{Attribute: "intention_to_deprive", Equals: true},
				},
			},
		},
	}
}

func constitutionalFramework() Framework {
	return Framework{
		ID:      "con",
		Name:    "Constitutional Law",
		Domains: []string{"constitutional"},
		Rules: []Rule{
			{
				ID:            "rights-limitation-valid?",
				Name:          "Valid limitation of rights",
				Domain:        "constitutional",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"proportionality", "rule-of-law"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "law_of_general_application", Equals: true},
					{Attribute: "legitimate_purpose", Equals: true},
					{Attribute: "proportionate", Equals: true},
				},
			},
			{
				ID:            "law-invalid?",
				Name:          "Constitutional invalidity",
				Domain:        "constitutional",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"rule-of-law"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "infringes_right", Equals: true},
					{Attribute: "limitation_justified", Equals: false, Default: false},
				},
			},
		},
	}
}

func administrativeFramework() Framework {
	return Framework{
		ID:      "adm",
		Name:    "Administrative Law",
		Domains: []string{"administrative"},
		Rules: []Rule{
			{
				ID:            "procedurally-fair?",
				Name:          "Procedural fairness",
				Domain:        "administrative",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"audi-alteram-partem"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "notice_given", Equals: true},
					{Attribute: "opportunity_to_respond", Equals: true},
					{Attribute: "impartial_decision_maker", Equals: true, Default: true},
				},
				Relationships: []Relationship{
					{Target: "decision-reviewable?", Name: "negates", Strength: 0.85},
				},
			},
			{
				ID:            "decision-reviewable?",
				Name:          "Reviewable administrative action",
				Domain:        "administrative",
				Level:         3,
				InferenceType: "inductive",
				DerivedFrom:   []string{"rule-of-law", "audi-alteram-partem"},
				Combine:       "any",
				Conditions: []Condition{
					{Attribute: "ultra_vires", Equals: true},
					{Attribute: "procedurally_unfair", Equals: true},
					{Attribute: "irrational", Equals: true},
				},
			},
		},
	}
}

func labourFramework() Framework {
	return Framework{
		ID:      "lab",
		Name:    "Labour Law",
		Domains: []string{"labour"},
		Rules: []Rule{
			{
				ID:            "fair-dismissal?",
				Name:          "Fair dismissal",
				Description:   "Dismissal for a fair reason following a fair procedure.",
				Domain:        "labour",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"audi-alteram-partem", "good-faith"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "fair_reason", Equals: true},
					{Attribute: "fair_procedure", Equals: true},
					{Attribute: "hearing_held", Equals: true, Default: true},
				},
			},
			{
				ID:            "summary-dismissal-justified?",
				Name:          "Summary dismissal",
				Domain:        "labour",
				Level:         3,
				InferenceType: "inductive",
				DerivedFrom:   []string{"fair-dismissal?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "serious_misconduct", Equals: true, Default: false},
					{Attribute: "trust_destroyed", Equals: true, Default: false},
				},
			},
		},
	}
}

func environmentalFramework() Framework {
	return Framework{
		ID:      "env",
		Name:    "Environmental Law",
		Domains: []string{"environmental"},
		Rules: []Rule{
			{
				ID:            "remediation-liable?",
				Name:          "Remediation liability",
				Domain:        "environmental",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"polluter-pays"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "pollution_caused", Equals: true},
					{Attribute: "significant_harm", Equals: true},
				},
			},
			{
				ID:            "precaution-required?",
				Name:          "Precautionary measures required",
				Domain:        "environmental",
				Level:         2,
				InferenceType: "abductive",
				DerivedFrom:   []string{"polluter-pays", "proportionality"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "risk_of_harm", Equals: true},
					{Attribute: "scientific_uncertainty", Equals: true, Default: true},
				},
			},
		},
	}
}

func constructionFramework() Framework {
	return Framework{
		ID:      "cst",
		Name:    "Construction Law",
		Domains: []string{"construction"},
		Rules: []Rule{
			{
				ID:            "defects-liability?",
				Name:          "Defects liability",
				Domain:        "construction",
				Level:         3,
				InferenceType: "deductive",
				DerivedFrom:   []string{"contract-valid?", "good-faith"},
				Requires:      []string{"contract-valid?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "defect_present", Equals: true},
					{Attribute: "within_liability_period", Equals: true, Default: true},
				},
			},
			{
				ID:            "extension-of-time?",
				Name:          "Extension of time",
				Domain:        "construction",
				Level:         3,
				InferenceType: "inductive",
				DerivedFrom:   []string{"contract-valid?"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "delay_event", Equals: true},
					{Attribute: "notice_given", Equals: true},
					{Attribute: "contractor_fault", Equals: false, Default: false},
				},
			},
		},
	}
}

func internationalFramework() Framework {
	return Framework{
		ID:      "int",
		Name:    "International Law",
		Domains: []string{"international"},
		Rules: []Rule{
			{
				ID:            "treaty-binding?",
				Name:          "Treaty binding force",
				Domain:        "international",
				Level:         2,
				InferenceType: "deductive",
				DerivedFrom:   []string{"pacta-sunt-servanda"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "ratified", Equals: true},
					{Attribute: "in_force", Equals: true, Default: true},
				},
			},
			{
				ID:            "customary-norm?",
				Name:          "Customary international norm",
				Domain:        "international",
				Level:         2,
				InferenceType: "inductive",
				DerivedFrom:   []string{"pacta-sunt-servanda"},
				Combine:       "all",
				Conditions: []Condition{
					{Attribute: "state_practice", Equals: true},
					{Attribute: "opinio_juris", Equals: true},
				},
			},
		},
	}
}
