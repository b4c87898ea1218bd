package entity

// PresetUserData is a fixed set of display attributes used to seed known
// identities from the preset table.
type PresetUserData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PhotoURL  string `json:"photoUrl"`
}

// PresetUsers maps known handles to their display data. Used by the
// UpdateUserData admin action.
var PresetUsers = map[string]PresetUserData{
	"@kadochkindesign": {
		FirstName: "Максим",
		LastName:  "Кадочкин",
		PhotoURL:  "https://static.tildacdn.com/tild3838-3437-4433-a634-353036353333/noroot.png",
	},
	"@maxtytoowork": {
		FirstName: "Анна",
		LastName:  "Смирнова",
		PhotoURL:  "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop",
	},
	"tech_lead": {
		FirstName: "Алексей",
		LastName:  "Иванов",
		PhotoURL:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
	},
}

// PresetFor looks up the preset table by handle.
func PresetFor(username string) (PresetUserData, bool) {
	p, ok := PresetUsers[username]
	return p, ok
}
