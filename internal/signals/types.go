package signals

type Trigger string

const (
	TriggerStress    Trigger = "stress"
	TriggerAnxiety   Trigger = "anxiety"
	TriggerSocial    Trigger = "social"
	TriggerBoredom   Trigger = "boredom"
	TriggerSleep     Trigger = "sleep"
	TriggerSadness   Trigger = "sadness"
	TriggerCraving   Trigger = "craving"
	TriggerCelebrate Trigger = "celebration"
)

var ValidTriggers = map[Trigger]string{
	TriggerStress:    "Work, study or money pressure",
	TriggerAnxiety:   "Nervousness, worry or panic",
	TriggerSocial:    "Friends using, parties and peer pressure",
	TriggerBoredom:   "Nothing to do, idle time",
	TriggerSleep:     "Trouble falling or staying asleep",
	TriggerSadness:   "Feeling down, lonely or grieving",
	TriggerCraving:   "A strong physical urge without a clear cause",
	TriggerCelebrate: "Rewarding yourself or celebrating",
}

func (t Trigger) IsValid() bool {
	_, ok := ValidTriggers[t]
	return ok
}

type SignalStrength int

const (
	StrengthWeak SignalStrength = iota + 1
	StrengthModerate
	StrengthStrong
)

// Signal is one trigger cue found in free-text relapse notes.
type Signal struct {
	Trigger  Trigger
	Strength SignalStrength
	Match    string
}
