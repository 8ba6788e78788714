package questions

// DefaultRules is the medical-history script used when no rules file is configured.
func DefaultRules() []Rule {
	return []Rule{
		{"diabetes", []string{
			"When was it diagnosed?",
			"What treatment was given - medical, surgical, or hospitalization?",
			"Are any medications being taken? If yes, please specify names and dosages.",
		}},
		{"blood pressure", []string{
			"When was it diagnosed?",
			"What are your typical blood pressure readings?",
			"Are any medications being taken? If yes, please specify names and dosages.",
		}},
		{"hypothyroid", []string{"When was it diagnosed?", "Are you taking any medication for it?"}},
		{"hyperthyroid", []string{"When was it diagnosed?", "Are you taking any medication for it?"}},
		{"thyroid", []string{"When was the thyroid condition diagnosed?", "What is your current medication dosage?"}},
		{"asthma", []string{
			"When was it diagnosed?",
			"How often do you use an inhaler?",
			"Have you ever been hospitalized for asthma?",
		}},
		{"arthritis", []string{
			"When was it diagnosed?",
			"Which joints are affected?",
			"How does it impact your daily activities?",
		}},
		{"surgery", []string{
			"What was the surgery for and when was it performed?",
			"Were there any post-surgery complications?",
			"Are there any current symptoms or recurrence?",
		}},
		{"hospitalization", []string{
			"What was the reason for the hospitalization?",
			"What year was the hospitalization/surgery?",
			"How many days was the hospitalization?",
		}},
		{"tobacco", []string{"How frequently do you use tobacco? Daily, weekly, or a few times a year?"}},
		{"alcohol", []string{"How frequently do you consume alcohol? Daily, weekly, or a few times a year?"}},
		{"pregnant", []string{
			"When is the baby due?",
			"Are there any pregnancy-related complications?",
			"Are there any pregnancy-related medications being taken?",
		}},
		{"cataract", []string{"When was the cataract diagnosed or operated on?", "Are there any ongoing vision issues?"}},
		{"glaucoma", []string{"When was glaucoma diagnosed?", "What treatment are you receiving?"}},
		{"hernia", []string{"When was the hernia diagnosed or operated on?", "Are there any current symptoms?"}},
		{"kidney", []string{"What is the specific kidney disorder?", "When was it diagnosed and what treatment was given?"}},
		{"liver", []string{"What is the specific liver disorder?", "When was it diagnosed and what treatment was given?"}},
		{"heart", []string{"What is the specific heart disease?", "Are you taking any medications for it?"}},
		{"cancer", []string{"What type of cancer or tumor was it?", "What was the treatment and when was it completed?"}},
	}
}
