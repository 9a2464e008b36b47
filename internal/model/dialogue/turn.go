package dialogue

import "strings"

// Speaker identifies which side of the dialogue produced a turn.
type Speaker string

const (
	SpeakerStudent Speaker = "student"
	SpeakerTutor   Speaker = "tutor"
)

// OpeningProbe is the hidden student message that asks the tutor to open the
// conversation. It is persisted for conversational continuity with the model
// but never shown on screen.
const OpeningProbe = "Hello, please begin our discussion."

// Turn is a single utterance in a transcript.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// StudentTurn builds a student-side turn.
func StudentTurn(text string) Turn {
	return Turn{Speaker: SpeakerStudent, Text: text}
}

// TutorTurn builds a tutor-side turn.
func TutorTurn(text string) Turn {
	return Turn{Speaker: SpeakerTutor, Text: text}
}

// Visible filters a transcript down to the turns the UI should display:
// empty-text turns and the literal opening probe are dropped.
func Visible(turns []Turn) []Turn {
	visible := make([]Turn, 0, len(turns))
	for _, turn := range turns {
		text := strings.TrimSpace(turn.Text)
		if text == "" || text == OpeningProbe {
			continue
		}
		visible = append(visible, turn)
	}
	return visible
}
