package runemetrics

// profileResponse is the /profile/profile payload
type profileResponse struct {
	Error            string            `json:"error"`
	Name             string            `json:"name"`
	Rank             string            `json:"rank"`
	TotalSkill       int64             `json:"totalskill"`
	TotalXP          int64             `json:"totalxp"`
	CombatLevel      int64             `json:"combatlevel"`
	LoggedIn         string            `json:"loggedIn"`
	QuestsComplete   int               `json:"questscomplete"`
	QuestsStarted    int               `json:"questsstarted"`
	QuestsNotStarted int               `json:"questsnotstarted"`
	SkillValues      []skillValue      `json:"skillvalues"`
	Activities       []activityPayload `json:"activities"`
}

// skillValue carries XP in tenths of a point
type skillValue struct {
	ID    int   `json:"id"`
	Level int64 `json:"level"`
	XP    int64 `json:"xp"`
	Rank  int64 `json:"rank"`
}

type activityPayload struct {
	Date    string `json:"date"`
	Details string `json:"details"`
	Text    string `json:"text"`
}

// questsResponse is the /quests payload
type questsResponse struct {
	Error  string         `json:"error"`
	Quests []questPayload `json:"quests"`
}

type questPayload struct {
	Title        string `json:"title"`
	Status       string `json:"status"`
	Difficulty   int    `json:"difficulty"`
	Members      bool   `json:"members"`
	QuestPoints  int    `json:"questPoints"`
	UserEligible bool   `json:"userEligible"`
}
