package operative

// DefaultCategory is the pool used when a room is created or started
// without an explicit category.
const DefaultCategory = "classic"

// wordPools maps a lobby category to its candidate board words. Every pool
// must hold at least entity.BoardSize distinct words.
var wordPools = map[string][]string{
	"classic": {
		"AGENT", "ANCHOR", "ANGEL", "APPLE", "ARM", "BANK", "BARK", "BEACH",
		"BELL", "BERLIN", "BOARD", "BOMB", "BOND", "BOW", "BRIDGE", "BUTTON",
		"CANADA", "CAPITAL", "CARD", "CASINO", "CELL", "CHARGE", "CHURCH",
		"CIRCLE", "CLOAK", "CODE", "COLD", "COMPOUND", "CONTRACT", "COURT",
		"COVER", "CROWN", "CYCLE", "DANCE", "DATE", "DEGREE", "DIAMOND",
		"DICE", "DOCTOR", "DRAFT", "DRAGON", "DRESS", "DROP", "DUCK", "EAGLE",
		"EGYPT", "EMBASSY", "ENGINE", "EUROPE", "FAIR", "FALL", "FENCE",
		"FIGURE", "FILE", "FILM", "FIRE", "FLUTE", "FOREST", "FRAME",
		"GHOST", "GLASS", "GRACE", "GREEN", "HAND", "HAWK", "HOOD", "HORN",
		"ICE", "IRON", "JET", "KEY", "KNIGHT", "LASER", "LIGHT", "LIMOUSINE",
		"LOCK", "LONDON", "MAIL", "MARCH", "MASK", "MATCH", "MERCURY",
		"MICROSCOPE", "MINT", "MOSCOW", "NEEDLE", "NET", "NIGHT", "NOTE",
		"OCTOPUS", "OPERA", "ORANGE", "PALM", "PAPER", "PARACHUTE", "PASS",
		"PHOENIX", "PILOT", "PIPE", "PLATE", "POISON", "POLICE", "POUND",
		"PRESS", "PRINCESS", "RADIO", "RING", "ROBOT", "ROME", "ROOT",
		"ROSE", "ROUND", "SATELLITE", "SCALE", "SCREEN", "SEAL", "SHADOW",
		"SHARK", "SHOT", "SINK", "SLIP", "SNOW", "SOUND", "SPIKE", "SPRING",
		"SPY", "STAFF", "STAR", "STATE", "STICK", "STRIKE", "SWITCH",
		"TABLE", "TAG", "TAIL", "THIEF", "TIME", "TOKYO", "TORCH", "TOWER",
		"TRACK", "TRAIN", "TRIP", "UNDERTAKER", "VACUUM", "VET", "WAKE",
		"WALL", "WASHER", "WATCH", "WAVE", "WEB", "WELL", "WHIP", "WIND",
		"WITCH", "YARD",
	},
	"tech": {
		"ARRAY", "BINARY", "BRANCH", "BUFFER", "BUG", "CACHE", "CHIP",
		"CLOUD", "CLUSTER", "COMPILER", "CONSOLE", "COOKIE", "CRASH",
		"CURSOR", "DAEMON", "DRIVER", "FIREWALL", "FORK", "FRAMEWORK",
		"GATEWAY", "HASH", "KERNEL", "LOOP", "MACRO", "MEMORY", "MIRROR",
		"MODULE", "MOUSE", "PACKET", "PATCH", "PIXEL", "PORT", "PROTOCOL",
		"PROXY", "QUEUE", "ROUTER", "SCRIPT", "SERVER", "SHELL", "SOCKET",
		"STACK", "STREAM", "TERMINAL", "THREAD", "TOKEN", "VIRUS", "WIDGET",
	},
	"wilderness": {
		"ANTLER", "BADGER", "BEAR", "BEAVER", "BOULDER", "CANYON", "CAVE",
		"CLIFF", "CREEK", "DEN", "EAGLE", "ELK", "EMBER", "FALCON", "FERN",
		"FOX", "GLACIER", "GROVE", "HERON", "LICHEN", "LYNX", "MARSH",
		"MEADOW", "MOOSE", "MOSS", "OTTER", "OWL", "PINE", "RAPIDS",
		"RAVEN", "RIDGE", "SALMON", "SUMMIT", "THICKET", "TIMBER", "TRAIL",
		"TROUT", "TUNDRA", "VALLEY", "WOLF",
	},
}

// Categories lists the selectable word pool names.
func Categories() []string {
	names := make([]string, 0, len(wordPools))
	for name := range wordPools {
		names = append(names, name)
	}
	return names
}
