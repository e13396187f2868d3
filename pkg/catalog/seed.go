package catalog

// leagueOrder is the fixed priority order used everywhere a league
// tie-break is needed. Team-sport leagues first, keyword-only last.
var leagueOrder = []string{"NFL", "NBA", "MLB", "NHL", "UFC", "SOCCER"}

// seedTeams ships with the binary so classification works before any
// roster refresh has run. UFC and SOCCER have no closed roster; they
// are detected by keywords and, for soccer, by the configured
// competition feeds.
var seedTeams = map[string][]string{
	"NFL": {
		"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens", "Buffalo Bills",
		"Carolina Panthers", "Chicago Bears", "Cincinnati Bengals", "Cleveland Browns",
		"Dallas Cowboys", "Denver Broncos", "Detroit Lions", "Green Bay Packers",
		"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars", "Kansas City Chiefs",
		"Las Vegas Raiders", "Los Angeles Chargers", "Los Angeles Rams", "Miami Dolphins",
		"Minnesota Vikings", "New England Patriots", "New Orleans Saints", "New York Giants",
		"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers", "San Francisco 49ers",
		"Seattle Seahawks", "Tampa Bay Buccaneers", "Tennessee Titans", "Washington Commanders",
	},
	"NBA": {
		"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
		"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
		"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
		"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
		"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
		"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
		"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
		"Utah Jazz", "Washington Wizards",
	},
	"MLB": {
		"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles", "Boston Red Sox",
		"Chicago Cubs", "Chicago White Sox", "Cincinnati Reds", "Cleveland Guardians",
		"Colorado Rockies", "Detroit Tigers", "Houston Astros", "Kansas City Royals",
		"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins", "Milwaukee Brewers",
		"Minnesota Twins", "New York Mets", "New York Yankees", "Oakland Athletics",
		"Philadelphia Phillies", "Pittsburgh Pirates", "San Diego Padres", "San Francisco Giants",
		"Seattle Mariners", "St. Louis Cardinals", "Tampa Bay Rays", "Texas Rangers",
		"Toronto Blue Jays", "Washington Nationals",
	},
	"NHL": {
		"Anaheim Ducks", "Boston Bruins", "Buffalo Sabres", "Calgary Flames",
		"Carolina Hurricanes", "Chicago Blackhawks", "Colorado Avalanche", "Columbus Blue Jackets",
		"Dallas Stars", "Detroit Red Wings", "Edmonton Oilers", "Florida Panthers",
		"Los Angeles Kings", "Minnesota Wild", "Montreal Canadiens", "Nashville Predators",
		"New Jersey Devils", "New York Islanders", "New York Rangers", "Ottawa Senators",
		"Philadelphia Flyers", "Pittsburgh Penguins", "San Jose Sharks", "Seattle Kraken",
		"St. Louis Blues", "Tampa Bay Lightning", "Toronto Maple Leafs", "Utah Hockey Club",
		"Vancouver Canucks", "Vegas Golden Knights", "Washington Capitals", "Winnipeg Jets",
	},
}
