package signals

import (
	"regexp"
	"strings"
)

type Detector struct {
	triggerPatterns []*triggerPattern
}

type triggerPattern struct {
	Pattern  *regexp.Regexp
	Strength SignalStrength
	Trigger  Trigger
}

func NewDetector() *Detector {
	return &Detector{
		triggerPatterns: []*triggerPattern{
			{regexp.MustCompile(`(?i)\b(stress(ed|ful)?|pressure|deadline|overwhelm(ed|ing)?|burn(ed|t)? ?out)\b`), StrengthStrong, TriggerStress},
			{regexp.MustCompile(`(?i)\b(work|boss|exam|bills?|money)\b`), StrengthWeak, TriggerStress},
			{regexp.MustCompile(`(?i)\b(anxi(ous|ety)|panic(ked)?|nervous|worried|worry)\b`), StrengthStrong, TriggerAnxiety},
			{regexp.MustCompile(`(?i)\b(party|festival|concert)\b`), StrengthStrong, TriggerSocial},
			{regexp.MustCompile(`(?i)\b(friends?|offered|peer pressure|hanging out|bar)\b`), StrengthModerate, TriggerSocial},
			{regexp.MustCompile(`(?i)\b(bored(om)?|nothing to do|idle)\b`), StrengthStrong, TriggerBoredom},
			{regexp.MustCompile(`(?i)\b(insomnia|couldn'?t sleep|can'?t sleep|sleepless|to sleep)\b`), StrengthStrong, TriggerSleep},
			{regexp.MustCompile(`(?i)\b(sad|lonely|alone|depress(ed|ion)?|grief|crying|breakup)\b`), StrengthStrong, TriggerSadness},
			{regexp.MustCompile(`(?i)\b(craving|urge|withdrawal)\b`), StrengthModerate, TriggerCraving},
			{regexp.MustCompile(`(?i)\b(celebrat(e|ed|ing|ion)|reward(ed)? myself|birthday|weekend)\b`), StrengthModerate, TriggerCelebrate},
		},
	}
}

// DetectSignals returns every trigger cue in notes, in pattern order.
func (d *Detector) DetectSignals(notes string) []Signal {
	content := strings.TrimSpace(notes)
	if content == "" {
		return nil
	}

	var signals []Signal
	for _, pattern := range d.triggerPatterns {
		if match := pattern.Pattern.FindString(content); match != "" {
			signals = append(signals, Signal{
				Trigger:  pattern.Trigger,
				Strength: pattern.Strength,
				Match:    match,
			})
		}
	}
	return signals
}

// InferTrigger picks the trigger with the highest summed strength. Ties go to
// the trigger whose first cue appears earliest in the pattern table.
func (d *Detector) InferTrigger(notes string) (Trigger, bool) {
	signals := d.DetectSignals(notes)
	if len(signals) == 0 {
		return "", false
	}

	scores := make(map[Trigger]SignalStrength)
	var order []Trigger
	for _, sig := range signals {
		if _, seen := scores[sig.Trigger]; !seen {
			order = append(order, sig.Trigger)
		}
		scores[sig.Trigger] += sig.Strength
	}

	best := order[0]
	for _, t := range order[1:] {
		if scores[t] > scores[best] {
			best = t
		}
	}
	return best, true
}
