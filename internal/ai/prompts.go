package ai

import (
	"fmt"
	"strings"

	"alcyxob/trainerpro/internal/domain"

	"github.com/samber/lo"
)

// DefaultLanguage is the language of generated exercise names and guides.
const DefaultLanguage = "Brazilian Portuguese"

func describeExperience(level domain.ExperienceLevel) string {
	switch level {
	case domain.LevelBeginner:
		return "Beginner (under 1 year of training)"
	case domain.LevelIntermediate:
		return "Intermediate (1-3 years of training)"
	case domain.LevelAdvanced:
		return "Advanced (3+ years of training)"
	default:
		return string(level)
	}
}

func describeModality(t domain.TrainingType) string {
	if t == domain.TrainingGroup {
		return "Group training (must be adaptable to several people at once)"
	}
	return "Personal training (individual, focus on technique and specificity)"
}

func orNone(s, none string) string {
	if strings.TrimSpace(s) == "" {
		return none
	}
	return s
}

// buildPlanPrompt writes the instruction block for a weekly plan.
func buildPlanPrompt(s domain.Student, goal, language string) string {
	var sb strings.Builder

	sb.WriteString("Act as an elite personal trainer.\n")
	sb.WriteString("Create a weekly training plan (Monday to Sunday) for the following student.\n\n")

	sb.WriteString("STUDENT PROFILE:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", s.Name))
	sb.WriteString(fmt.Sprintf("- Age: %d years\n", s.Age))
	sb.WriteString(fmt.Sprintf("- Gender: %s\n", orNone(string(s.Gender), string(domain.GenderUndeclared))))
	sb.WriteString(fmt.Sprintf("- Experience level: %s\n", describeExperience(s.ExperienceLevel)))
	sb.WriteString(fmt.Sprintf("- Modality: %s\n", describeModality(s.TrainingType)))

	if len(s.Schedule.Days) > 0 {
		days := lo.Map(s.Schedule.Days, func(d domain.Weekday, _ int) string { return string(d) })
		sb.WriteString(fmt.Sprintf("- Training days: %s (%d days per week)\n", strings.Join(days, ", "), len(days)))
		sb.WriteString(fmt.Sprintf("- Usual training time: %s\n", orNone(s.Schedule.Time, domain.DefaultTrainingTime)))
	}

	sb.WriteString("\nGOAL:\n")
	sb.WriteString(orNone(goal, s.Goal))
	sb.WriteString("\n\nHEALTH AND RESTRICTIONS (VERY IMPORTANT):\n")
	sb.WriteString(fmt.Sprintf("- Injuries/restrictions: %s\n", orNone(s.Injuries, "None reported")))
	sb.WriteString(fmt.Sprintf("- Medical notes: %s\n", orNone(s.MedicalNotes, "None")))

	sb.WriteString("\nGOLDEN RULES:\n")
	sb.WriteString("1. The plan must be SAFE. If injuries are reported, avoid any exercise that could aggravate them.\n")
	sb.WriteString("2. Respect the experience level: beginner = lower volume and more machines; advanced = higher volume and free weights.\n")
	sb.WriteString("3. For group training, prefer exercises that need little or simple equipment and are easy to rotate between people.\n")
	if len(s.Schedule.Days) > 0 {
		sb.WriteString("4. Only the training days listed above get exercises. Every other day must have focus \"Rest\" and an empty exercises array.\n")
	} else {
		sb.WriteString("4. Choose sensible training days; every other day must have focus \"Rest\" and an empty exercises array.\n")
	}
	sb.WriteString("5. Return exactly one entry per weekday, using the English weekday names from the schema.\n")
	sb.WriteString(fmt.Sprintf("6. Write exercise names, focus and notes in %s, using names common in gyms.\n", language))
	sb.WriteString("7. Respond ONLY with JSON following the provided schema. No text outside the JSON.\n")

	return sb.String()
}

// buildGuidePrompt writes the instruction block for a free-text workout guide.
func buildGuidePrompt(topic, language string) string {
	var sb strings.Builder

	sb.WriteString("Act as an experienced personal trainer writing a workout guide for a client.\n")
	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))
	sb.WriteString("The guide must include:\n")
	sb.WriteString("1. A short warm-up.\n")
	sb.WriteString("2. The exercise list with sets x reps for each exercise.\n")
	sb.WriteString("3. Technique notes for the key movements.\n")
	sb.WriteString("4. Rest intervals between sets.\n\n")
	sb.WriteString(fmt.Sprintf("Write it in %s, with a professional and motivating tone, ready to hand to the client.\n", language))

	return sb.String()
}
