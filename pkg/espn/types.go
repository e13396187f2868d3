package espn

// Scoreboard is the trimmed shape of ESPN's site API scoreboard
// response. Only the fields the tracker reads are mapped.
type Scoreboard struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
	Status      Status       `json:"status"`
}

type Competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     Team   `json:"team"`
}

type Team struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// Final reports whether the event has gone terminal.
func (e *Event) Final() bool {
	if len(e.Competitions) == 0 {
		return false
	}
	st := e.Competitions[0].Status.Type
	return st.Completed || st.State == "post"
}

// Summary is the trimmed shape of the game summary endpoint; the
// boxscore player tables are what prop settlement reads.
type Summary struct {
	Boxscore struct {
		Players []PlayerGroup `json:"players"`
	} `json:"boxscore"`
	Header struct {
		Competitions []Competition `json:"competitions"`
	} `json:"header"`
}

type PlayerGroup struct {
	Team       Team        `json:"team"`
	Statistics []StatTable `json:"statistics"`
}

type StatTable struct {
	Name     string        `json:"name"`
	Labels   []string      `json:"labels"`
	Athletes []AthleteLine `json:"athletes"`
}

type AthleteRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AthleteLine struct {
	Athlete AthleteRef `json:"athlete"`
	Stats   []string   `json:"stats"`
}

// Final reports whether the summary's event has gone terminal.
func (s *Summary) Final() bool {
	if len(s.Header.Competitions) == 0 {
		return false
	}
	st := s.Header.Competitions[0].Status.Type
	return st.Completed || st.State == "post"
}
