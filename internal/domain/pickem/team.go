package pickem

import "strings"

var teamCodes = map[string]struct{}{
	"ARI": {}, "ATL": {}, "BAL": {}, "BUF": {}, "CAR": {}, "CHI": {}, "CIN": {}, "CLE": {},
	"DAL": {}, "DEN": {}, "DET": {}, "GB": {}, "HOU": {}, "IND": {}, "JAX": {}, "KC": {},
	"LA": {}, "LAC": {}, "LV": {}, "MIA": {}, "MIN": {}, "NE": {}, "NO": {}, "NYG": {},
	"NYJ": {}, "PHI": {}, "PIT": {}, "SEA": {}, "SF": {}, "TB": {}, "TEN": {}, "WAS": {},
}

// Provider long names, including relocated and renamed franchises.
var teamCodeByName = map[string]string{
	"arizona cardinals":        "ARI",
	"atlanta falcons":          "ATL",
	"baltimore ravens":         "BAL",
	"buffalo bills":            "BUF",
	"carolina panthers":        "CAR",
	"chicago bears":            "CHI",
	"cincinnati bengals":       "CIN",
	"cleveland browns":         "CLE",
	"dallas cowboys":           "DAL",
	"denver broncos":           "DEN",
	"detroit lions":            "DET",
	"green bay packers":        "GB",
	"houston texans":           "HOU",
	"indianapolis colts":       "IND",
	"jacksonville jaguars":     "JAX",
	"kansas city chiefs":       "KC",
	"los angeles rams":         "LA",
	"st. louis rams":           "LA",
	"los angeles chargers":     "LAC",
	"las vegas raiders":        "LV",
	"oakland raiders":          "LV",
	"miami dolphins":           "MIA",
	"minnesota vikings":        "MIN",
	"new england patriots":     "NE",
	"new orleans saints":       "NO",
	"new york giants":          "NYG",
	"new york jets":            "NYJ",
	"philadelphia eagles":      "PHI",
	"pittsburgh steelers":      "PIT",
	"seattle seahawks":         "SEA",
	"san francisco 49ers":      "SF",
	"tampa bay buccaneers":     "TB",
	"tennessee titans":         "TEN",
	"washington":               "WAS",
	"washington commanders":    "WAS",
	"washington redskins":      "WAS",
	"washington football team": "WAS",
}

// NormalizeTeamCode upper-cases and trims a team code.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsKnownTeam(code string) bool {
	_, ok := teamCodes[NormalizeTeamCode(code)]
	return ok
}

// TeamCodeFromName resolves a provider team name to its code. Codes are
// accepted as-is.
func TeamCodeFromName(name string) (string, bool) {
	if IsKnownTeam(name) {
		return NormalizeTeamCode(name), true
	}
	code, ok := teamCodeByName[strings.ToLower(strings.Join(strings.Fields(name), " "))]
	return code, ok
}
