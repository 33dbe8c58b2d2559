package factors

import "github.com/MikeSquared-Agency/mofasa/internal/project"

// table is the MoFASA factor taxonomy. Edit here; there is no runtime setter.
var table = []Factor{
	// Situation
	{
		Name:           "Robot Appearance",
		Description:    "How the robot looks: size, shape, anthropomorphic features, colour and visible sensors.",
		Examples:       []string{"The robot was taller than me", "It had eyes on a screen"},
		RelatedFactors: []string{"Robot Behavior", "Expectations"},
		Section:        project.Situation,
	},
	{
		Name:           "Robot Behavior",
		Description:    "What the robot did during the encounter: movement, speed, signalling, speech.",
		Examples:       []string{"It stopped and waited", "It beeped before turning"},
		RelatedFactors: []string{"Robot Appearance", "Predictability"},
		Section:        project.Situation,
	},
	{
		Name:           "Environment",
		Description:    "Physical surroundings of the interaction: space, layout, obstacles, lighting, noise.",
		Examples:       []string{"A narrow corridor", "A crowded cafeteria"},
		RelatedFactors: []string{"Presence of Others", "Time"},
		Section:        project.Situation,
	},
	{
		Name:           "Presence of Others",
		Description:    "Other people present during the interaction and whether they were watching or involved.",
		Examples:       []string{"My colleagues were behind me", "Nobody else was around"},
		RelatedFactors: []string{"Social Norms", "Environment"},
		Section:        project.Situation,
	},
	{
		Name:           "Time",
		Description:    "Time pressure and timing of the encounter, such as rushing to a meeting or a quiet hour.",
		Examples:       []string{"I was late for a meeting", "It was early in the morning"},
		RelatedFactors: []string{"Task", "Environment"},
		Section:        project.Situation,
	},
	{
		Name:           "Task",
		Description:    "What the participant was doing or trying to achieve when the robot appeared.",
		Examples:       []string{"Carrying a tray", "Looking for a room"},
		RelatedFactors: []string{"Time", "Goals"},
		Section:        project.Situation,
	},

	// Identity
	{
		Name:           "Age",
		Description:    "The participant's age range.",
		Examples:       []string{"25-34"},
		RelatedFactors: []string{"Prior Experience"},
		Section:        project.Identity,
	},
	{
		Name:           "Gender",
		Description:    "The participant's self-described gender.",
		Examples:       []string{"Female", "Non-binary"},
		RelatedFactors: []string{"Culture"},
		Section:        project.Identity,
	},
	{
		Name:           "Culture",
		Description:    "Nationality and cultural background that shape expectations about politeness and space.",
		Examples:       []string{"Grew up in Japan", "Dutch"},
		RelatedFactors: []string{"Social Norms", "Gender"},
		Section:        project.Identity,
	},
	{
		Name:           "Occupation",
		Description:    "The participant's job or role, which can change how they relate to the robot.",
		Examples:       []string{"Nurse", "Software engineer"},
		RelatedFactors: []string{"Role", "Education"},
		Section:        project.Identity,
	},
	{
		Name:           "Education",
		Description:    "Highest level or field of education.",
		Examples:       []string{"MSc in mechanical engineering"},
		RelatedFactors: []string{"Occupation", "Technology Attitude"},
		Section:        project.Identity,
	},
	{
		Name:           "Prior Experience",
		Description:    "Earlier encounters with robots or similar technology in general.",
		Examples:       []string{"I had seen it in the lobby before"},
		RelatedFactors: []string{"Prior Experience with Robots", "Familiarity"},
		Section:        project.Identity,
	},
	{
		Name:           "Prior Experience with Robots",
		Description:    "Specific hands-on experience with robots, such as building, operating or living with one.",
		Examples:       []string{"I own a robot vacuum", "I programmed industrial arms"},
		RelatedFactors: []string{"Prior Experience", "Technology Attitude"},
		Section:        project.Identity,
	},
	{
		Name:           "Technology Attitude",
		Description:    "General stance towards new technology: enthusiasm, scepticism, anxiety.",
		Examples:       []string{"I love gadgets", "I don't trust machines"},
		RelatedFactors: []string{"Trust", "Prior Experience with Robots"},
		Section:        project.Identity,
	},
	{
		Name:           "Role",
		Description:    "The role the participant saw themselves in during the encounter: bystander, user, co-worker.",
		Examples:       []string{"I was just passing by", "I was supposed to supervise it"},
		RelatedFactors: []string{"Occupation", "Goals"},
		Section:        project.Identity,
	},

	// Definition of Situation
	{
		Name:           "Expectations",
		Description:    "What the participant expected the robot to do or be capable of.",
		Examples:       []string{"I thought it would move out of my way"},
		RelatedFactors: []string{"Robot Appearance", "Predictability"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Perceived Purpose",
		Description:    "What the participant believed the robot was there for.",
		Examples:       []string{"I assumed it was delivering medicine"},
		RelatedFactors: []string{"Expectations", "Goals"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Predictability",
		Description:    "How well the participant could anticipate the robot's next move.",
		Examples:       []string{"I couldn't tell which way it would turn"},
		RelatedFactors: []string{"Robot Behavior", "Trust"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Trust",
		Description:    "Confidence that the robot would act safely and competently.",
		Examples:       []string{"I was sure it would stop"},
		RelatedFactors: []string{"Predictability", "Technology Attitude"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Familiarity",
		Description:    "Whether the situation felt routine or novel to the participant.",
		Examples:       []string{"It happens every day here"},
		RelatedFactors: []string{"Prior Experience"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Social Norms",
		Description:    "Shared expectations about appropriate behaviour, such as queuing or giving way.",
		Examples:       []string{"You let the one carrying something go first"},
		RelatedFactors: []string{"Culture", "Presence of Others"},
		Section:        project.DefinitionOfSituation,
	},
	{
		Name:           "Goals",
		Description:    "What the participant wanted to achieve and how the robot helped or hindered it.",
		Examples:       []string{"I just wanted to get to the elevator"},
		RelatedFactors: []string{"Task", "Perceived Purpose"},
		Section:        project.DefinitionOfSituation,
	},

	// Rule Selection
	{
		Name:           "Rule Salience",
		Description:    "How obvious a particular rule of conduct was in the moment.",
		Examples:       []string{"The only thing that came to mind was to step aside"},
		RelatedFactors: []string{"Rule Conflict", "Social Norms"},
		Section:        project.RuleSelection,
	},
	{
		Name:           "Rule Conflict",
		Description:    "Competing rules that applied at once, such as politeness versus hurry.",
		Examples:       []string{"I wanted to be polite but I was in a rush"},
		RelatedFactors: []string{"Rule Salience", "Time"},
		Section:        project.RuleSelection,
	},
	{
		Name:           "Habit",
		Description:    "Rules followed out of routine rather than deliberation.",
		Examples:       []string{"I always keep right"},
		RelatedFactors: []string{"Familiarity"},
		Section:        project.RuleSelection,
	},

	// Decision
	{
		Name:           "Outcome Evaluation",
		Description:    "How the participant judged the result of their decision afterwards.",
		Examples:       []string{"Looking back, waiting was the right call"},
		RelatedFactors: []string{"Emotional Response"},
		Section:        project.Decision,
	},
	{
		Name:           "Emotional Response",
		Description:    "Feelings during and after the decision: relief, irritation, amusement, fear.",
		Examples:       []string{"I felt a bit silly"},
		RelatedFactors: []string{"Outcome Evaluation", "Trust"},
		Section:        project.Decision,
	},
	{
		Name:           "Effort",
		Description:    "Physical or cognitive cost of acting on the decision.",
		Examples:       []string{"I had to walk all the way around"},
		RelatedFactors: []string{"Time", "Goals"},
		Section:        project.Decision,
	},
}
